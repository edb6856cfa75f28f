package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "fsnd.au.auth0.com", cfg.Auth.Domain)
	assert.Equal(t, "drinks", cfg.Auth.Audience)
	assert.Equal(t, 5*time.Second, cfg.Auth.JWKSTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH0_DOMAIN", "https://tenant.eu.auth0.com/")
	t.Setenv("JWKS_TIMEOUT", "750ms")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://coffee@localhost/coffee")
	t.Setenv("DB_RESET", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8100, https://shop.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr())
	assert.Equal(t, "tenant.eu.auth0.com", cfg.Auth.Domain)
	assert.Equal(t, 750*time.Millisecond, cfg.Auth.JWKSTimeout)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Reset)
	assert.Equal(t, []string{"http://localhost:8100", "https://shop.example.com"}, cfg.Server.AllowedOrigins())
}

func TestLoad_EnvFile(t *testing.T) {
	require.NoError(t, os.Unsetenv("REDIS_KEY_PREFIX"))
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_KEY_PREFIX") })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_KEY_PREFIX=fromfile:\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fromfile:", cfg.Storage.RedisKeyPrefix)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":        {"STORAGE_DRIVER": "sqlite"},
		"postgres without dsn":  {"STORAGE_DRIVER": "postgres", "DB_DSN": ""},
		"blank audience":        {"API_AUDIENCE": "  "},
		"negative leeway":       {"AUTH_LEEWAY": "-1s"},
		"zero shutdown timeout": {"SHUTDOWN_TIMEOUT": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
