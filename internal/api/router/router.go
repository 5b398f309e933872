package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prodone-web/prodone-api/internal/api/respond"
	"github.com/prodone-web/prodone-api/internal/booking"
	httpmiddleware "github.com/prodone-web/prodone-api/internal/http/middleware"
	"github.com/prodone-web/prodone-api/internal/leads"
	"github.com/prodone-web/prodone-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadsHandler       *leads.Handler
	BookingWebhook     *booking.WebhookHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
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

	// The webhook contract promises a JSON 405 for non-POST requests.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthCheck)
		api.Post("/leads", cfg.LeadsHandler.Submit)
		api.Post("/appointment", cfg.BookingWebhook.Handle)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

// healthCheck reports liveness only; it never consults configuration state.
func healthCheck(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "ProDone API is running",
	})
}
