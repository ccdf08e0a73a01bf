package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"littlelemon/internal/config"
	"littlelemon/internal/database"
	"littlelemon/internal/server"
	"littlelemon/internal/services"
	"littlelemon/pkg/rabbitmq"
	"littlelemon/pkg/redisstore"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	// Order events are optional: without a URL the API runs without publishing.
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		log.Println("Starting RabbitMQ consumer for order events...")
		if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RabbitMQ URL is not set. Order events are disabled.")
	}

	// --- Rate limiter storage ---
	var limiterStorage fiber.Storage
	if cfg.Redis.URL != "" {
		store, err := redisstore.NewFromURL(cfg.Redis.URL, "littlelemon:limiter:")
		if err != nil {
			log.Fatalf("Failed to initialize Redis storage: %v", err)
		}
		defer store.Close()
		limiterStorage = store
	}

	// --- Application ---
	app := server.New(server.Deps{
		DB:             db,
		JWTSecret:      cfg.JWT.Secret,
		TokenTTL:       cfg.JWT.TTL,
		RateLimit:      cfg.RateLimit,
		Publisher:      publisher,
		LimiterStorage: limiterStorage,
		AccessLog:      true,
	})

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		if err := app.Auth.EnsureSuperuser(context.Background(), cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatalf("Failed to create superuser: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.App.Port)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}
