package middleware

import (
	"context"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"coffee-shop/internal/platform/logger"
	"coffee-shop/internal/platform/respond"
	"coffee-shop/internal/ports/auth"
)

// ClaimsHandlerFunc es un handler protegido: recibe los claims ya verificados
// como parámetro explícito (no viajan en el context).
type ClaimsHandlerFunc func(w http.ResponseWriter, r *http.Request, claims auth.Claims)

// BearerToken extrae el token del header Authorization.
// "Bearer <token>" es la única forma aceptada; el prefijo no distingue mayúsculas.
func BearerToken(h http.Header) (string, error) {
	values := h.Values("Authorization")
	if len(values) == 0 {
		return "", auth.ErrHeaderMissing()
	}

	parts := strings.Fields(values[0])
	switch {
	case len(parts) == 0 || !strings.EqualFold(parts[0], "bearer"):
		return "", auth.ErrHeaderNotBearer()
	case len(parts) == 1:
		return "", auth.ErrTokenNotFound()
	case len(parts) > 2:
		return "", auth.ErrHeaderNotBearerToken()
	}
	return parts[1], nil
}

// CheckPermission exige que permission esté en el claim "permissions".
// La comparación es literal, incluso para "".
func CheckPermission(permission string, claims auth.Claims) error {
	if !claims.HasPermissions {
		return auth.ErrPermissionsMissing()
	}
	if !claims.Has(permission) {
		return auth.ErrPermissionNotFound()
	}
	return nil
}

// AuthGate compone extractor, verificador y chequeo de permiso.
type AuthGate struct {
	verifier auth.TokenVerifier
	log      logger.Logger
}

func NewAuthGate(verifier auth.TokenVerifier, log logger.Logger) *AuthGate {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthGate{verifier: verifier, log: log}
}

// Authorize corre la cadena completa para un header y un permiso.
// Toda falla es un *auth.Error.
func (g *AuthGate) Authorize(ctx context.Context, h http.Header, permission string) (auth.Claims, error) {
	token, err := BearerToken(h)
	if err != nil {
		return auth.Claims{}, err
	}

	claims, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if _, ok := auth.AsError(err); ok {
			return auth.Claims{}, err
		}
		return auth.Claims{}, auth.ErrUnparseable()
	}

	if err := CheckPermission(permission, claims); err != nil {
		return auth.Claims{}, err
	}
	return claims, nil
}

// Require envuelve next: sólo lo invoca si Authorize pasa.
func (g *AuthGate) Require(permission string, next ClaimsHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.Authorize(r.Context(), r.Header, permission)
		if err != nil {
			ae, ok := auth.AsError(err)
			if !ok {
				ae = auth.ErrUnparseable()
			}
			g.log.Warn("auth rejected", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"permission": permission,
				"code":       string(ae.Code),
				"status":     ae.Status,
				"path":       r.URL.Path,
			})
			respond.AuthError(w, ae)
			return
		}
		next(w, r, claims)
	}
}
