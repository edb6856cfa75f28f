package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop/internal/adapters/auth/jwks"
	"coffee-shop/internal/adapters/auth/jwks/jwkstest"
	mem "coffee-shop/internal/adapters/storage/memory"
	"coffee-shop/internal/domain/drinks"
	"coffee-shop/internal/middleware"
	"coffee-shop/internal/router"
)

type env struct {
	url    string
	issuer *jwkstest.Issuer
}

func newEnv(t *testing.T, ready func(context.Context) error) *env {
	t.Helper()

	iss := jwkstest.NewIssuer(t)
	fetcher := jwks.NewFetcher(jwks.FetcherConfig{URL: iss.JWKSURL(), Timeout: 2 * time.Second})
	verifier := jwks.NewVerifier(fetcher, jwks.VerifierConfig{Domain: iss.Domain, Audience: iss.Audience})

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Drinks: drinks.NewService(mem.NewDrinkRepo()),
		Gate:   middleware.NewAuthGate(verifier, nil),
		Ready:  ready,
	}))
	t.Cleanup(ts.Close)

	return &env{url: ts.URL, issuer: iss}
}

func doReq(t *testing.T, baseURL, method, path string, headers map[string]string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

type errBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeErr(t *testing.T, raw []byte) errBody {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(raw, &b), string(raw))
	return b
}

func TestHTTP_EndToEnd_DrinkLifecycle(t *testing.T) {
	e := newEnv(t, nil)
	manager := e.issuer.Token(t, drinks.PermGetDetail, drinks.PermPost, drinks.PermPatch, drinks.PermDelete)

	// 1) Manager crea una bebida
	{
		st, body := doReq(t, e.url, http.MethodPost, "/drinks", bearer(manager), map[string]any{
			"title":  "Water3",
			"recipe": []any{map[string]any{"name": "Water", "color": "blue", "parts": 1}},
		})
		require.Equal(t, http.StatusOK, st, string(body))
		assert.JSONEq(t, `{"success":true,"drinks":[{"id":1,"title":"Water3","recipe":[{"name":"Water","color":"blue","parts":1}]}]}`, string(body))
	}

	// 2) Público ve la vista corta
	{
		st, body := doReq(t, e.url, http.MethodGet, "/drinks", nil, nil)
		require.Equal(t, http.StatusOK, st)
		assert.JSONEq(t, `{"success":true,"drinks":[{"id":1,"title":"Water3","recipe":[{"color":"blue","parts":1}]}]}`, string(body))
	}

	// 3) Barista ve la vista larga
	{
		barista := e.issuer.Token(t, drinks.PermGetDetail)
		st, body := doReq(t, e.url, http.MethodGet, "/drinks-detail", bearer(barista), nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), `"name":"Water"`)
	}

	// 4) Manager edita el título
	{
		st, body := doReq(t, e.url, http.MethodPatch, "/drinks/1", bearer(manager), map[string]any{"title": "Water5"})
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), `"title":"Water5"`)
	}

	// 5) Manager borra
	{
		st, body := doReq(t, e.url, http.MethodDelete, "/drinks/1", bearer(manager), nil)
		require.Equal(t, http.StatusOK, st)
		assert.JSONEq(t, `{"success":true,"delete":1}`, string(body))
	}

	// 6) Ya no existe
	{
		st, body := doReq(t, e.url, http.MethodDelete, "/drinks/1", bearer(manager), nil)
		assert.Equal(t, http.StatusNotFound, st)
		assert.JSONEq(t, `{"success":false,"error":404,"message":"not found"}`, string(body))
	}
}

func TestHTTP_PatchTitleKeepsEmptyRecipe(t *testing.T) {
	e := newEnv(t, nil)
	manager := e.issuer.Token(t, drinks.PermPost, drinks.PermPatch)

	st, body := doReq(t, e.url, http.MethodPost, "/drinks", bearer(manager), map[string]any{"title": "air", "recipe": []any{}})
	require.Equal(t, http.StatusOK, st, string(body))

	st, body = doReq(t, e.url, http.MethodPatch, "/drinks/1", bearer(manager), map[string]any{"title": "thin air"})
	require.Equal(t, http.StatusOK, st, string(body))
	assert.JSONEq(t, `{"success":true,"drinks":[{"id":1,"title":"thin air","recipe":[]}]}`, string(body))
}

func TestHTTP_AuthFailures(t *testing.T) {
	e := newEnv(t, nil)

	expiredClaims := e.issuer.Claims(drinks.PermGetDetail)
	expiredClaims["exp"] = time.Now().Add(-time.Minute).Unix()

	other := jwkstest.GenerateKey(t)

	cases := []struct {
		name    string
		headers map[string]string
		status  int
		code    string
		message string
	}{
		{"no header", nil, 401, "authorization_header_missing", "Authorization header is expected."},
		{"basic scheme", map[string]string{"Authorization": "Basic abc123"}, 401, "invalid_header", `Authorization header must start with "Bearer".`},
		{"bearer alone", map[string]string{"Authorization": "Bearer"}, 401, "invalid_header", "Token not found."},
		{"expired", bearer(e.issuer.Sign(t, expiredClaims)), 401, "token_expired", "Token expired."},
		{"forged signature", bearer(jwkstest.SignWith(t, other, e.issuer.Kid, e.issuer.Claims(drinks.PermGetDetail))), 400, "invalid_header", "Unable to parse authentication token."},
		{"missing permission", bearer(e.issuer.Token(t, drinks.PermPost)), 403, "unauthorized", "Permission not found."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, raw := doReq(t, e.url, http.MethodGet, "/drinks-detail", tc.headers, nil)
			assert.Equal(t, tc.status, st)

			b := decodeErr(t, raw)
			assert.False(t, b.Success)
			assert.Equal(t, tc.status, b.Error)
			assert.Equal(t, tc.code, b.Code)
			assert.Equal(t, tc.message, b.Message)
		})
	}
}

func TestHTTP_PermissionsClaimMissing(t *testing.T) {
	e := newEnv(t, nil)

	c := e.issuer.Claims()
	delete(c, "permissions")

	st, raw := doReq(t, e.url, http.MethodPost, "/drinks", bearer(e.issuer.Sign(t, c)), map[string]any{"title": "x", "recipe": []any{}})
	assert.Equal(t, http.StatusBadRequest, st)
	b := decodeErr(t, raw)
	assert.Equal(t, "invalid_claims", b.Code)
	assert.Equal(t, "Permissions not included in JWT.", b.Message)
}

func TestHTTP_SameTokenTwice(t *testing.T) {
	e := newEnv(t, nil)
	tok := e.issuer.Token(t, drinks.PermGetDetail)

	st1, b1 := doReq(t, e.url, http.MethodGet, "/drinks-detail", bearer(tok), nil)
	st2, b2 := doReq(t, e.url, http.MethodGet, "/drinks-detail", bearer(tok), nil)

	assert.Equal(t, http.StatusOK, st1)
	assert.Equal(t, st1, st2)
	assert.JSONEq(t, string(b1), string(b2))
	assert.Equal(t, int64(2), e.issuer.Calls())
}

func TestHTTP_Surface(t *testing.T) {
	e := newEnv(t, nil)

	st, body := doReq(t, e.url, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, e.url, http.MethodGet, "/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, st)
	assert.JSONEq(t, `{"success":false,"error":404,"message":"not found"}`, string(body))

	st, body = doReq(t, e.url, http.MethodPut, "/drinks", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, st)
	assert.JSONEq(t, `{"success":false,"error":405,"message":"method not allowed"}`, string(body))

	st, body = doReq(t, e.url, http.MethodGet, "/swagger/doc.json", nil, nil)
	require.Equal(t, http.StatusOK, st)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(body, &doc), string(body))
	want := map[string][]string{
		"/drinks":        {"get", "post"},
		"/drinks-detail": {"get"},
		"/drinks/{id}":   {"patch", "delete"},
	}
	for path, methods := range want {
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, path)
		}
	}
}

func TestHTTP_RequestIDEchoed(t *testing.T) {
	e := newEnv(t, nil)

	req, err := http.NewRequest(http.MethodGet, e.url+"/drinks", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get(middleware.RequestIDHeader))
}

func TestHTTP_Ready(t *testing.T) {
	up := newEnv(t, func(context.Context) error { return nil })
	st, _ := doReq(t, up.url, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusOK, st)

	down := newEnv(t, func(context.Context) error { return errors.New("connection refused") })
	st, raw := doReq(t, down.url, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, st)
	assert.Equal(t, 503, decodeErr(t, raw).Error)
}
