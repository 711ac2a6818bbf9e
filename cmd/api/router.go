package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/crucial707/account-api/internal/account"
	"github.com/crucial707/account-api/internal/config"
	"github.com/crucial707/account-api/internal/handlers"
	"github.com/crucial707/account-api/internal/middleware"
	"github.com/crucial707/account-api/internal/password"
	"github.com/crucial707/account-api/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires the repository, account service and handlers onto a chi router.
func newRouter(db *sql.DB, cfg config.Config, limiter *middleware.IPRateLimiter, logger *slog.Logger) http.Handler {
	userRepo := repo.NewUserRepo(db)
	accounts := account.NewService(userRepo, password.NewBcryptHasher(cfg.BcryptCost), account.WithLogger(logger))
	authHandler := handlers.NewAuthHandler(accounts, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.Get("/ready", handlers.Ready(userRepo))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/health", authHandler.Health)
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/signup", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})
	})

	return r
}
