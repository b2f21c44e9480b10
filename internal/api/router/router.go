package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/konanauto/garage-booking/internal/http/handlers"
	httpmiddleware "github.com/konanauto/garage-booking/internal/http/middleware"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	BookingHandler     *handlers.BookingHandler
	LimitsHandler      *handlers.LimitsHandler
	AddressHandler     *handlers.AddressHandler
	MetricsHandler     http.Handler
	StaffAuthSecret    string
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

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", cfg.BookingHandler.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		public.Route("/api", func(api chi.Router) {
			api.Get("/services", cfg.BookingHandler.ListServices)
			api.Get("/calendar", cfg.BookingHandler.Calendar)
			api.Get("/slots", cfg.BookingHandler.Slots)
			if cfg.AddressHandler != nil {
				api.Get("/address", cfg.AddressHandler.Lookup)
			}
			api.With(httpmiddleware.RateLimit(1, 5)).Post("/bookings", cfg.BookingHandler.CreateBooking)
		})
	})

	// Staff endpoints (protected by JWT)
	if cfg.StaffAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.StaffJWT(cfg.StaffAuthSecret))
			admin.Post("/bookings", cfg.BookingHandler.CreateStaffBooking)
			if cfg.LimitsHandler != nil {
				admin.Get("/limits", cfg.LimitsHandler.GetLimits)
				admin.Put("/limits", cfg.LimitsHandler.UpdateLimits)
			}
		})
	}

	return r
}
