package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop/internal/adapters/auth/jwks/jwkstest"
	"coffee-shop/internal/config"
	"coffee-shop/internal/platform/logger"
)

func testConfig(iss *jwkstest.Issuer) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", CORSAllowedOrigins: "*"},
		Auth: config.AuthConfig{
			Domain:      iss.Domain,
			Audience:    iss.Audience,
			JWKSURL:     iss.JWKSURL(),
			JWKSTimeout: 2 * time.Second,
		},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
	}
}

func TestNew_MemoryWiring(t *testing.T) {
	iss := jwkstest.NewIssuer(t)

	a, err := New(context.Background(), testConfig(iss), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	r := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
	r.Header.Set("Authorization", "Bearer "+iss.Token(t, "get:drinks-detail"))
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"drinks":[]}`, w.Body.String())
}

func TestNew_UnknownDriver(t *testing.T) {
	iss := jwkstest.NewIssuer(t)
	cfg := testConfig(iss)
	cfg.Storage.Driver = "sqlite"

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestClose_RunsInReverse(t *testing.T) {
	var order []int
	a := &App{log: logger.Nop()}
	a.closers = append(a.closers,
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return nil },
	)

	require.NoError(t, a.Close())
	assert.Equal(t, []int{2, 1}, order)
}
