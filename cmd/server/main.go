package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"libralend/internal/adapters/http/middleware"
	"libralend/internal/adapters/http/routes"
	"libralend/internal/config"
	"libralend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Create the in-memory stores
	stores := routes.NewStores()

	// Seed admin user and, in dev mode, a demo catalog
	seeder := config.NewSeeder(cfg, stores.Users, stores.Books, stores.Members)
	if err := seeder.Run(); err != nil {
		log.Fatalf("❌ Failed to seed: %v", err)
	}

	// Start the daily overdue sweep (08:30 daily)
	overdueService := services.NewOverdueService(stores.History, cfg)
	if err := overdueService.Start(); err != nil {
		log.Fatalf("❌ Failed to start overdue service: %v", err)
	}
	defer overdueService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LibraLend API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, stores, overdueService, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
