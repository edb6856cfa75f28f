// Package jwkstest levanta un IdP falso (JWKS sobre httptest) y firma tokens RS256
// para tests de verificador, middleware y router.
package jwkstest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultDomain   = "coffee-test.auth0.local"
	DefaultAudience = "drinks"
	DefaultKid      = "test-key"
)

// Issuer es un IdP de prueba: una llave RSA y un endpoint JWKS.
type Issuer struct {
	Domain   string
	Audience string
	Kid      string
	Key      *rsa.PrivateKey

	srv   *httptest.Server
	keys  atomic.Value // []byte
	calls atomic.Int64
}

// NewIssuer genera la llave, publica el JWKS y registra Close en t.Cleanup.
func NewIssuer(t testing.TB) *Issuer {
	t.Helper()

	iss := &Issuer{
		Domain:   DefaultDomain,
		Audience: DefaultAudience,
		Kid:      DefaultKid,
		Key:      GenerateKey(t),
	}
	iss.SetKeys(t, PublicJWK(&iss.Key.PublicKey, iss.Kid))

	iss.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		iss.calls.Add(1)
		if r.URL.Path != "/.well-known/jwks.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(iss.keys.Load().([]byte))
	}))
	t.Cleanup(iss.srv.Close)
	return iss
}

// JWKSURL apunta al endpoint local (usar como JWKS_URL).
func (i *Issuer) JWKSURL() string { return i.srv.URL + "/.well-known/jwks.json" }

// IssuerURL es el iss que firman los tokens: https://{Domain}/
func (i *Issuer) IssuerURL() string { return "https://" + i.Domain + "/" }

// Calls cuenta los GET recibidos por el JWKS.
func (i *Issuer) Calls() int64 { return i.calls.Load() }

// SetKeys reemplaza el documento publicado.
func (i *Issuer) SetKeys(t testing.TB, keys ...jose.JSONWebKey) {
	t.Helper()
	doc := struct {
		Keys []jose.JSONWebKey `json:"keys"`
	}{Keys: keys}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal jwks: %v", err)
	}
	i.keys.Store(b)
}

// Claims arma un payload válido (iss/aud/exp/iat/sub) con los permisos dados.
func (i *Issuer) Claims(permissions ...string) jwt.MapClaims {
	now := time.Now()
	perms := make([]any, 0, len(permissions))
	for _, p := range permissions {
		perms = append(perms, p)
	}
	return jwt.MapClaims{
		"iss":         i.IssuerURL(),
		"aud":         i.Audience,
		"sub":         "auth0|barista",
		"iat":         now.Unix(),
		"exp":         now.Add(time.Hour).Unix(),
		"permissions": perms,
	}
}

// Token firma un token válido con los permisos dados.
func (i *Issuer) Token(t testing.TB, permissions ...string) string {
	t.Helper()
	return i.Sign(t, i.Claims(permissions...))
}

// Sign firma claims arbitrarios con la llave y kid del issuer.
func (i *Issuer) Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	return SignWith(t, i.Key, i.Kid, claims)
}

func GenerateKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("gen key: %v", err)
	}
	return pk
}

// PublicJWK arma la entrada JWKS de una llave pública.
func PublicJWK(pub *rsa.PublicKey, kid string) jose.JSONWebKey {
	return jose.JSONWebKey{Key: pub, KeyID: kid, Algorithm: "RS256", Use: "sig"}
}

// SignWith firma RS256; kid vacío omite el header.
func SignWith(t testing.TB, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}
