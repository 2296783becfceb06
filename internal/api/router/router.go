// Package router assembles the HTTP surface: public scheduling endpoints,
// operational endpoints, and the JWT-guarded admin group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/healthsync-ai/scheduler/internal/http/handlers"
	httpmiddleware "github.com/healthsync-ai/scheduler/internal/http/middleware"
	"github.com/healthsync-ai/scheduler/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	Triage             *handlers.TriageHandler
	Bookings           *handlers.BookingHandler
	Availability       *handlers.AvailabilityHandler
	Waitlist           *handlers.WaitlistHandler
	Forecast           *handlers.ForecastHandler
	FollowUps          *handlers.FollowUpHandler
	Admin              *handlers.AdminHandler
	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
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

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/triage", cfg.Triage.Assess)

		api.Post("/bookings", cfg.Bookings.Create)
		api.Get("/bookings", cfg.Bookings.List)
		api.Get("/bookings/{appointmentID}", cfg.Bookings.Get)
		api.Delete("/bookings/{appointmentID}", cfg.Bookings.Cancel)

		api.Get("/availability", cfg.Availability.Get)
		api.Get("/availability/next-date", cfg.Availability.NextDate)

		api.Get("/waitlist", cfg.Waitlist.List)
		api.Post("/waitlist/promote", cfg.Waitlist.Promote)
		api.Get("/waitlist/{entryID}/position", cfg.Waitlist.Position)
		api.Delete("/waitlist/{entryID}", cfg.Waitlist.Remove)

		api.Get("/forecast", cfg.Forecast.Predict)
		api.Get("/forecast/summary", cfg.Forecast.Summary)

		api.Post("/followups", cfg.FollowUps.CheckIn)
		api.Get("/followups", cfg.FollowUps.List)
	})

	if cfg.Admin != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Post("/bookings/override", cfg.Admin.Override)
			admin.Post("/capacity/prune", cfg.Admin.Prune)
		})
	}

	return r
}
