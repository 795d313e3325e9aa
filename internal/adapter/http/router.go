package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/metzakaria/vendicore/internal/adapter/http/handler"
	"github.com/metzakaria/vendicore/internal/adapter/http/middleware"
	"github.com/metzakaria/vendicore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	FundingHandler  *handler.FundingHandler
	MerchantHandler *handler.MerchantHandler
	ProductHandler  *handler.ProductHandler
	ProviderHandler *handler.ProviderHandler
	UserHandler     *handler.UserHandler
	LedgerHandler   *handler.LedgerHandler
	HealthHandler   *handler.HealthHandler

	Gate             *middleware.Gate
	Logging          *middleware.LoggingMiddleware
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	MetricsHandler   http.Handler

	CORSAllowedOrigins []string
}

// NewRouter creates a new HTTP router. The gate runs before every route, so
// admin endpoints are already role-checked by the time a handler sees the
// request; use cases re-check on top of that.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	} else {
		r.Use(chimiddleware.Logger)
	}

	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	if cfg.Gate != nil {
		r.Use(cfg.Gate.Wrap)
	}

	// Public endpoints
	r.Post("/login", cfg.AuthHandler.Login)
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Admin area
		r.Route("/admin", func(r chi.Router) {
			r.Route("/fundings", func(r chi.Router) {
				r.Post("/", cfg.FundingHandler.Create)
				r.Put("/{reference}", cfg.FundingHandler.Amend)
				r.Get("/{reference}/audit", cfg.FundingHandler.AuditTrail)
			})

			r.Route("/merchants", func(r chi.Router) {
				r.Post("/", cfg.MerchantHandler.Create)
				r.Put("/{id}/status", cfg.MerchantHandler.UpdateStatus)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", cfg.ProductHandler.Create)
				r.Put("/{id}/active", cfg.ProductHandler.SetActive)
			})

			r.Post("/providers", cfg.ProviderHandler.Create)
			r.Post("/discounts", cfg.ProductHandler.CreateDiscount)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", cfg.UserHandler.Create)
				r.Get("/", cfg.UserHandler.List)
			})

			r.Get("/ledger/drift/{merchantID}", cfg.LedgerHandler.Drift)
		})

		// Read paths, any authenticated role
		r.Get("/fundings/{reference}", cfg.FundingHandler.Get)

		r.Route("/merchants", func(r chi.Router) {
			r.Get("/", cfg.MerchantHandler.List)
			r.Get("/{id}", cfg.MerchantHandler.Get)
			r.Get("/{id}/fundings", cfg.FundingHandler.ListByMerchant)
			r.Get("/{id}/discounts", cfg.ProductHandler.ListDiscountsByMerchant)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", cfg.ProviderHandler.List)
			r.Get("/{id}", cfg.ProviderHandler.Get)
		})
	})

	return r
}
