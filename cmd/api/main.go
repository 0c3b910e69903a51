package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/stayloop/hotel-bookings/internal/http/handlers"
	authmw "github.com/stayloop/hotel-bookings/internal/http/middleware"
	"github.com/stayloop/hotel-bookings/internal/mailer"
	"github.com/stayloop/hotel-bookings/internal/notify"
	"github.com/stayloop/hotel-bookings/internal/repo/postgres"
	"github.com/stayloop/hotel-bookings/internal/service"
	"github.com/stayloop/hotel-bookings/pkg/config"
	"github.com/stayloop/hotel-bookings/pkg/database"
	"github.com/stayloop/hotel-bookings/pkg/events"
	"github.com/stayloop/hotel-bookings/pkg/logger"
	mw "github.com/stayloop/hotel-bookings/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	hotelRepo := postgres.NewHotelRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)

	// Services
	authService := service.NewAuthService(userRepo, eventBus, cfg)
	hotelService := service.NewHotelService(hotelRepo)
	bookingService := service.NewBookingService(bookingRepo, userRepo, eventBus)

	// Booking confirmation mail rides on the event bus
	notifier := notify.New(eventBus, buildMailer(cfg))
	if err := notifier.Start(); err != nil {
		logger.Error("Failed to start notifier", "error", err)
		os.Exit(1)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, bookingService)
	hotelHandler := handlers.NewHotelHandler(hotelService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	requireAuth := authmw.RequireAuth(cfg.Auth.JWTSecret)
	requireAdmin := authmw.RequireAdmin(userRepo)
	requireStaff := authmw.RequireStaff(userRepo)
	requireSelfOrAdmin := authmw.RequireSelfOrAdmin(userRepo)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.Me)
			r.Put("/update", authHandler.Update)
		})
	})

	r.Route("/hotels", func(r chi.Router) {
		r.Get("/", hotelHandler.List)
		r.Get("/{id}", hotelHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", hotelHandler.Create)
			r.Put("/{id}", hotelHandler.Update)
			r.Delete("/{id}", hotelHandler.Delete)
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(requireAuth)

		r.With(requireAdmin).Get("/", bookingHandler.List)
		r.Get("/mybookings", bookingHandler.MyBookings)
		r.Post("/", bookingHandler.Create)
		r.Put("/{id}", bookingHandler.Update)
		r.Delete("/{id}", bookingHandler.Delete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandler.Me)
			r.Get("/mybookings", userHandler.MyBookings)
			r.Put("/update", userHandler.Update)
			r.Delete("/delete", userHandler.Delete)

			r.With(requireStaff).Get("/{id}", userHandler.GetByID)
			r.With(requireSelfOrAdmin).Put("/{id}", userHandler.UpdateByID)
			r.With(requireSelfOrAdmin).Delete("/{id}", userHandler.DeleteByID)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		m, err := mailer.NewMailerSend(cfg.Email.MailerSendKey, "Stayloop", cfg.Email.SMTPFrom)
		if err == nil {
			return m
		}
		logger.Warn("MailerSend unavailable, falling back to SMTP", "error", err)
	}
	return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass)
}
