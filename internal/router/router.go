package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "coffee-shop/docs"
	"coffee-shop/internal/domain/drinks"
	"coffee-shop/internal/middleware"
	"coffee-shop/internal/platform/logger"
	"coffee-shop/internal/platform/respond"
)

type Options struct {
	Drinks *drinks.Service
	Gate   *middleware.AuthGate
	Log    logger.Logger

	// Vacío = "*"
	AllowedOrigins []string

	// Opcional: chequeo de readiness del storage (/health/ready).
	Ready func(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, respond.MsgNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/health/ready", readyHandler(opts.Ready, log))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	drinks.RegisterRoutes(r, opts.Drinks, opts.Gate, log)

	return r
}

func readyHandler(ready func(ctx context.Context) error, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				log.Warn("storage not ready", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"err":        err,
				})
				respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
				return
			}
		}
		respond.JSON(w, http.StatusOK, map[string]any{"success": true, "status": "ready"})
	}
}
