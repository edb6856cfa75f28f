package auth

import "context"

// KeySetFetcher trae el JWKS publicado por el issuer. Sin cache: una llamada por verificación.
type KeySetFetcher interface {
	FetchKeySet(ctx context.Context) (KeySet, error)
}

// TokenVerifier verifica un token y devuelve claims o un *Error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
