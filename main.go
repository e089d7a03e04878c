package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"clinic-api/internal/admin"
	"clinic-api/internal/admin/admin_api"
	"clinic-api/internal/appointment"
	"clinic-api/internal/appointment/appointment_api"
	appointment_db "clinic-api/internal/appointment/db"
	"clinic-api/internal/auth"
	"clinic-api/internal/auth/auth_api"
	auth_db "clinic-api/internal/auth/db"
	"clinic-api/internal/booking"
	"clinic-api/internal/booking/booking_api"
	booking_db "clinic-api/internal/booking/db"
	"clinic-api/internal/config"
	"clinic-api/internal/contact"
	"clinic-api/internal/contact/contact_api"
	contact_db "clinic-api/internal/contact/db"
	"clinic-api/internal/kafka"
	"clinic-api/internal/logger"
	"clinic-api/internal/utils"
)

func connectDatabase(cfg *config.Config, log *logger.Logger) *bun.DB {
	if cfg.Database.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Connecting to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err == nil {
			err = sqldb.Ping()
		}
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("PostgreSQL connection failed: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Could not connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Info("REDIS", "Redis disabled, stats cache off")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, stats cache off: %v", cfg.Redis.Addr, err))
		return nil
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func buildEvents(cfg *config.Config, log *logger.Logger) *kafka.Events {
	if !cfg.Kafka.Enabled {
		log.Info("KAFKA", "Kafka disabled, domain events off")
		return kafka.NewEvents(nil, cfg.Kafka.Topics, log, false)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	topics := []string{
		cfg.Kafka.Topics.BookingCreated,
		cfg.Kafka.Topics.BookingStatusChanged,
		cfg.Kafka.Topics.PaymentCreated,
		cfg.Kafka.Topics.ContactSubmitted,
	}
	if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	} else {
		log.Info("KAFKA", "Required topics ensured successfully")
	}
	return kafka.NewEvents(producer, cfg.Kafka.Topics, log, true)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Clinic API is running", map[string]string{"status": "ok"}))
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Clinic API initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	events := buildEvents(cfg, log)
	if events.Producer != nil {
		defer events.Producer.Close()
	}

	authService := auth.NewService(&auth_db.DB{Bun: bunDB})
	contactService := contact.NewService(&contact_db.DB{Bun: bunDB}, events)
	appointmentService := appointment.NewService(&appointment_db.DB{Bun: bunDB})
	bookingService := booking.NewService(&booking_db.DB{Bun: bunDB}, events, log)

	var statsCache *admin.Cache
	if redisClient != nil {
		statsCache = admin.NewCache(redisClient, cfg.Redis.StatsTTL)
	}
	adminService := admin.NewService(bunDB, statsCache, events)

	authHandler := auth_api.NewHandler(authService, log)
	contactHandler := contact_api.NewHandler(contactService, log)
	appointmentHandler := appointment_api.NewHandler(appointmentService, log)
	bookingHandler := booking_api.NewHandler(bookingService, log)
	adminHandler := admin_api.NewHandler(adminService, log, contactHandler.List, authHandler.ListUsers)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Post("/contact", contactHandler.Submit)
		r.Get("/contact", contactHandler.List)

		r.Post("/appointments", appointmentHandler.Book)
		r.Get("/appointments", appointmentHandler.List)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
		})
		r.Patch("/users/{id}", authHandler.UpdateProfile)

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/checkout", bookingHandler.Checkout)
			r.Get("/", bookingHandler.ListBookings)
			r.Get("/{bookingId}/qr", bookingHandler.ConfirmationQR)
		})
		r.Get("/payments", bookingHandler.ListPayments)

		adminHandler.RegisterRoutes(r)
	})
	log.Info("ROUTER", "Routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Clinic API running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Clinic API shutdown complete")
	}
}
