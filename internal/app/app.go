// Package app arma las dependencias una sola vez al arrancar: storage, auth y router.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"coffee-shop/internal/adapters/auth/jwks"
	mem "coffee-shop/internal/adapters/storage/memory"
	pg "coffee-shop/internal/adapters/storage/postgres"
	rdb "coffee-shop/internal/adapters/storage/redis"
	"coffee-shop/internal/config"
	"coffee-shop/internal/domain/drinks"
	"coffee-shop/internal/middleware"
	"coffee-shop/internal/platform/logger"
	"coffee-shop/internal/router"
)

type App struct {
	Handler http.Handler

	log     logger.Logger
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{log: log}

	repo, ready, err := a.openStorage(ctx, cfg.Storage)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	fetcher := jwks.NewFetcher(jwks.FetcherConfig{
		Domain:  cfg.Auth.Domain,
		URL:     cfg.Auth.JWKSURL,
		Timeout: cfg.Auth.JWKSTimeout,
	})
	verifier := jwks.NewVerifier(fetcher, jwks.VerifierConfig{
		Domain:   cfg.Auth.Domain,
		Audience: cfg.Auth.Audience,
		Leeway:   cfg.Auth.Leeway,
	})
	log.Info("auth configured", map[string]any{
		"issuer":   jwks.IssuerURL(cfg.Auth.Domain),
		"audience": cfg.Auth.Audience,
		"jwks_url": fetcher.URL(),
	})

	a.Handler = router.NewRouter(router.Options{
		Drinks:         drinks.NewService(repo),
		Gate:           middleware.NewAuthGate(verifier, log),
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins(),
		Ready:          ready,
	})
	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (drinks.Repository, func(context.Context) error, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := pg.Migrate(ctx, cfg.DSN, cfg.Reset); err != nil {
			return nil, nil, err
		}
		if cfg.Reset {
			a.log.Warn("database reset: all drinks dropped", nil)
		}

		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.log.Info("storage ready", map[string]any{"driver": cfg.Driver})
		return pg.NewDrinksRepo(db), db.PingContext, nil

	case config.DriverRedis:
		client, err := rdb.Dial(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, client.Close)

		repo, err := rdb.New(rdb.Config{Client: client, KeyPrefix: cfg.RedisKeyPrefix})
		if err != nil {
			return nil, nil, err
		}
		a.log.Info("storage ready", map[string]any{"driver": cfg.Driver, "addr": cfg.RedisAddr})
		return repo, func(ctx context.Context) error { return client.Ping(ctx).Err() }, nil

	case config.DriverMemory, "":
		a.log.Info("storage ready", map[string]any{"driver": config.DriverMemory})
		return mem.NewDrinkRepo(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close libera conexiones en orden inverso.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
