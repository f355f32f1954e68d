package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventrsvp/config"
	_ "eventrsvp/docs"
	"eventrsvp/internal/adapters/auth"
	deliveryhttp "eventrsvp/internal/delivery/http"
	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
	"eventrsvp/internal/repository/postgres"
	"eventrsvp/internal/services"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// @title Event RSVP API
// @version 1.0
// @description Events, attendance answers and paginated event listings.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("").Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	userRepo := postgres.NewUserRepository(db)

	limits := domain.PageLimits{
		Events:     cfg.EventsPageLimit,
		Attendance: cfg.AttendancePageLimit,
		Organizer:  cfg.OrganizerPageLimit,
	}
	eventService := services.NewEventService(eventRepo, limits, logger, cfg.RequestTimeout)
	attendeeService := services.NewAttendeeService(eventRepo, attendeeRepo, cfg.RequestTimeout)
	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
		cfg.RequestTimeout,
	)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AuthLimiter:    middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	},
		controllers.NewEventController(logger, eventService),
		controllers.NewAttendeeController(logger, attendeeService, eventService),
		controllers.NewUserController(logger, authService),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
