package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendtrack/internal/adapters/cache"
	"attendtrack/internal/adapters/http/middleware"
	"attendtrack/internal/adapters/http/routes"
	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/config"
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/jwt"
	"attendtrack/internal/pkg/metrics"
	"attendtrack/internal/pkg/password"

	"github.com/gofiber/fiber/v2"

	_ "attendtrack/docs" // Swagger docs
)

// @title Attendance Tracker API
// @version 1.0
// @description Student attendance tracking: registration, bearer tokens, role-gated attendance marking.

// @contact.name API Support

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	password.SetCost(cfg.Security.BcryptCost)

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenMins)*time.Minute)
	if err != nil {
		log.Fatalf("❌ Failed to create token issuer: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("❌ Error closing database: %v", err)
		}
	}()

	// Auto migrate (creates tables and the attendance unique index)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	if err := config.NewSeeder(db, cfg.Admin).Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Optional Redis for shared rate limits
	var redisStorage *cache.RedisStorage
	if cfg.Redis.Enabled() {
		redisStorage, err = cache.Connect(context.Background(), cfg.Redis)
		if err != nil {
			log.Printf("⚠️ Warning: %v (falling back to in-memory rate limits)", err)
			redisStorage = nil
		} else {
			defer redisStorage.Close()
		}
	}

	m := metrics.New()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Attendance Tracker API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	infra := routes.Infra{Issuer: issuer, Metrics: m, Redis: redisStorage}

	// Setup middlewares
	middleware.Setup(app, cfg, infra.Storage(), m)

	// Setup routes
	dashboardService := routes.Setup(app, db, cfg, infra)

	// Start stats cron
	cronService := services.NewCronService(cfg.StatsCron, dashboardService, m)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
