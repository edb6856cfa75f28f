package jwks

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"coffee-shop/internal/ports/auth"
)

// AlgRS256 es el único algoritmo aceptado.
const AlgRS256 = "RS256"

type VerifierConfig struct {
	Domain   string
	Audience string
	Leeway   time.Duration
}

// Verifier implementa auth.TokenVerifier contra el JWKS remoto del issuer.
type Verifier struct {
	fetcher  auth.KeySetFetcher
	audience string
	issuer   string
	algs     []string
	leeway   time.Duration
	now      func() time.Time
}

func NewVerifier(fetcher auth.KeySetFetcher, cfg VerifierConfig) *Verifier {
	return &Verifier{
		fetcher:  fetcher,
		audience: strings.TrimSpace(cfg.Audience),
		issuer:   IssuerURL(cfg.Domain),
		algs:     []string{AlgRS256},
		leeway:   cfg.Leeway,
		now:      time.Now,
	}
}

// IssuerURL devuelve el iss esperado: https://{domain}/
func IssuerURL(domain string) string {
	return "https://" + strings.TrimSpace(domain) + "/"
}

// Verify: JWKS -> kid del header sin verificar -> key -> firma RS256 -> exp/aud/iss.
// Toda falla sale como *auth.Error.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	ks, err := v.fetcher.FetchKeySet(ctx)
	if err != nil {
		return auth.Claims{}, auth.ErrUnparseable()
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return auth.Claims{}, auth.ErrUnparseable()
	}
	rawKid, ok := unverified.Header["kid"]
	if !ok {
		return auth.Claims{}, auth.ErrMalformed()
	}
	kid, ok := rawKid.(string)
	if !ok {
		return auth.Claims{}, auth.ErrKeyNotFound()
	}

	rec, ok := findKey(ks, kid)
	if !ok {
		return auth.Claims{}, auth.ErrKeyNotFound()
	}
	pub, err := rsaPublicKey(rec)
	if err != nil {
		return auth.Claims{}, auth.ErrUnparseable()
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods(v.algs),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	parsed, err := parser.Parse(token, func(*jwt.Token) (any, error) { return pub, nil })
	if err != nil {
		return auth.Claims{}, classify(err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, auth.ErrUnparseable()
	}
	return auth.ClaimsFromMap(map[string]any(mc)), nil
}

// classify separa "token vencido" y "claims incorrectos" (aud, iss, nbf) de "token basura".
func classify(err error) *auth.Error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, jwt.ErrTokenMalformed):
		return auth.ErrUnparseable()
	case errors.Is(err, jwt.ErrTokenExpired):
		return auth.ErrTokenExpired()
	case errors.Is(err, jwt.ErrTokenInvalidAudience), errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenNotValidYet):
		return auth.ErrIncorrectClaims()
	default:
		return auth.ErrUnparseable()
	}
}

// findKey recorre el set completo; si hay kids repetidos gana el último.
func findKey(ks auth.KeySet, kid string) (auth.KeyRecord, bool) {
	var (
		found auth.KeyRecord
		ok    bool
	)
	for _, k := range ks.Keys {
		if k.Kid == kid {
			found = k
			ok = true
		}
	}
	return found, ok
}

func rsaPublicKey(rec auth.KeyRecord) (*rsa.PublicKey, error) {
	doc := map[string]string{
		"kty": rec.Kty,
		"kid": rec.Kid,
		"n":   rec.N,
		"e":   rec.E,
	}
	if rec.Use != "" {
		doc["use"] = rec.Use
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("jwks: invalid key %q: %w", rec.Kid, err)
	}
	pub, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("jwks: key %q is %T, want RSA public key", rec.Kid, jwk.Key)
	}
	return pub, nil
}

var _ auth.TokenVerifier = (*Verifier)(nil)
