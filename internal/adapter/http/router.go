package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/farebox/farebox/internal/adapter/http/handler"
	"github.com/farebox/farebox/internal/adapter/http/middleware"
	"github.com/farebox/farebox/internal/infrastructure/metrics"
	"github.com/farebox/farebox/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	CatalogHandler   *handler.CatalogHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Register)
			r.Post("/sign-in", cfg.AccountHandler.SignIn)
			r.Get("/{id}/dashboard", cfg.LedgerHandler.Dashboard)
			r.Post("/{id}/entitlements", cfg.LedgerHandler.PurchaseEntitlement)
			r.Post("/{id}/trips", cfg.LedgerHandler.ChargeTravel)
			r.Post("/{id}/tickets", cfg.LedgerHandler.PurchaseTicket)
		})

		// Offerings
		r.Route("/offerings", func(r chi.Router) {
			r.Post("/", cfg.CatalogHandler.Add)
			r.Get("/", cfg.CatalogHandler.List)
			r.Get("/{id}", cfg.CatalogHandler.Get)
		})
	})

	return r
}
