package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config de la app completa. Se llena desde env (ver tags).
type Config struct {
	Server  ServerConfig
	Auth    AuthConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT,default=8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT,default=5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// Lista separada por comas.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
}

type AuthConfig struct {
	Domain      string        `env:"AUTH0_DOMAIN,default=fsnd.au.auth0.com"`
	Audience    string        `env:"API_AUDIENCE,default=drinks"`
	JWKSURL     string        `env:"JWKS_URL"`
	JWKSTimeout time.Duration `env:"JWKS_TIMEOUT,default=5s"`
	Leeway      time.Duration `env:"AUTH_LEEWAY,default=0s"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER,default=memory"`

	DSN   string `env:"DB_DSN"`
	Reset bool   `env:"DB_RESET,default=false"`

	RedisAddr      string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisDB        int    `env:"REDIS_DB,default=0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX,default=coffee:"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=json"`
	App    string `env:"APP_NAME,default=coffee-shop"`
}

// Load lee envFile (si viene, debe existir) o un .env opcional, y decodifica el entorno.
// Las variables ya presentes en el entorno ganan sobre el archivo.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Auth.Domain = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(c.Auth.Domain), "https://"), "/")
	c.Auth.Audience = strings.TrimSpace(c.Auth.Audience)
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("PORT is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if c.Auth.Domain == "" {
		return errors.New("AUTH0_DOMAIN is required")
	}
	if c.Auth.Audience == "" {
		return errors.New("API_AUDIENCE is required")
	}
	if c.Auth.JWKSTimeout <= 0 {
		return errors.New("JWKS_TIMEOUT must be positive")
	}
	if c.Auth.Leeway < 0 {
		return errors.New("AUTH_LEEWAY must not be negative")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("DB_DSN is required for STORAGE_DRIVER=postgres")
		}
	case DriverRedis:
		if strings.TrimSpace(c.Storage.RedisAddr) == "" {
			return errors.New("REDIS_ADDR is required for STORAGE_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (memory|postgres|redis)", c.Storage.Driver)
	}
	return nil
}

// Addr para http.Server.
func (s ServerConfig) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(s.Port), ":")
}

func (s ServerConfig) AllowedOrigins() []string {
	out := make([]string, 0)
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
