// Package router wires the HTTP surface: public webhook and query routes,
// the metrics endpoint and the JWT-protected admin routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swasthyasetu/health-assistant/internal/http/handlers"
	httpmiddleware "github.com/swasthyasetu/health-assistant/internal/http/middleware"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Assistant          *handlers.AssistantHandler
	Admin              *handlers.AdminHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// WebhookRateLimit caps inbound webhook requests per second per IP.
	// Zero disables limiting.
	WebhookRateLimit float64
	WebhookRateBurst int
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/healthz", cfg.Assistant.HealthCheck)
		if cfg.WebhookRateLimit > 0 {
			public.With(httpmiddleware.RateLimit(cfg.WebhookRateLimit, cfg.WebhookRateBurst)).
				Post("/webhook", cfg.Assistant.Webhook)
		} else {
			public.Post("/webhook", cfg.Assistant.Webhook)
		}
		public.Post("/api/query", cfg.Assistant.Query)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin endpoints behind HMAC JWT.
	if cfg.Admin != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/stats", cfg.Admin.GetStats)
			admin.Post("/reload", cfg.Admin.ReloadSymptoms)
			admin.Get("/escalations", cfg.Admin.ListEscalations)
			admin.Get("/users/{userID}/history", cfg.Admin.GetUserHistory)
		})
	}

	return r
}
