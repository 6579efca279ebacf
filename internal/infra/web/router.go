package web

import (
	"net/http"

	"github.com/DioGolang/GoBank/internal/infra/web/handler"
	"github.com/DioGolang/GoBank/internal/infra/web/middleware"
	"github.com/DioGolang/GoBank/pkg/logger"
	"github.com/DioGolang/GoBank/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

type RouterConfig struct {
	ServiceName string
	Log         logger.Logger
	Metrics     metrics.Metrics
	RateLimiter *middleware.IPRateLimiter
	Auth        *middleware.ActorAuth

	Customers *handler.Customer
	Accounts  *handler.Account
	Cards     *handler.Card
	Audit     *handler.Audit

	Health        http.Handler
	MetricsExport http.Handler
}

// NewRouter mounts the back-office API under /api/v1. Health and metrics
// stay outside authentication and rate limiting.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(otelchi.Middleware(cfg.ServiceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestMeta)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(middleware.HTTPMetrics(cfg.Metrics))

	if cfg.Health != nil {
		r.Handle("/health", cfg.Health)
	}
	if cfg.MetricsExport != nil {
		r.Handle("/metrics", cfg.MetricsExport)
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.Handler(cfg.Log))
		}
		if cfg.Auth != nil {
			api.Use(cfg.Auth.Handler)
		}

		api.Route("/customers", func(cr chi.Router) {
			cfg.Customers.Routes(cr)
			cr.Get("/{id}/accounts", cfg.Accounts.ListByCustomer)
		})
		api.Route("/accounts", func(ar chi.Router) {
			cfg.Accounts.Routes(ar)
			ar.Get("/{id}/cards", cfg.Cards.ListByAccount)
		})
		api.Post("/transfers", cfg.Accounts.Transfer)
		api.Route("/cards", cfg.Cards.Routes)
		api.Get("/audit", cfg.Audit.Query)
	})
	return r
}
