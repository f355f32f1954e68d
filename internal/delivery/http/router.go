package http

import (
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/metrics"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the cross-cutting pieces the router wraps around the controllers.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AuthLimiter    *middleware.IPRateLimiter
	AllowedOrigins []string
}

// NewRouter initializes the HTTP handler with all application routes
func NewRouter(cfg RouterConfig, events *controllers.EventController, attendees *controllers.AttendeeController, users *controllers.UserController) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	// Events
	mux.HandleFunc("GET /events", events.ListEvents)
	mux.HandleFunc("GET /events/{id}", events.GetEvent)
	mux.HandleFunc("POST /events", auth(events.CreateEvent))
	mux.HandleFunc("PATCH /events/{id}", auth(events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", auth(events.DeleteEvent))
	mux.HandleFunc("GET /event-organized-by-user/{userId}", events.ListOrganizedBy)

	// Attendance
	mux.HandleFunc("GET /events/{id}/attendees", attendees.ListEventAttendees)
	mux.HandleFunc("GET /events-attendance", auth(attendees.ListMyAttendance))
	mux.HandleFunc("GET /events-attendance/my/{eventId}", auth(attendees.GetMyAttendance))
	mux.HandleFunc("PUT /events-attendance/{eventId}", auth(attendees.PutMyAttendance))

	// Auth
	mux.HandleFunc("POST /users/sign-up", cfg.AuthLimiter.Limit(users.SignUp))
	mux.HandleFunc("POST /auth/login", cfg.AuthLimiter.Limit(users.Login))
	mux.HandleFunc("GET /auth/profile", auth(users.Profile))

	// Ops
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(middleware.LoggingMiddleware(cfg.Logger, metrics.Middleware(mux)))
}
