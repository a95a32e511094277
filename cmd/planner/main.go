package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"building-control/internal/common/config"
	"building-control/internal/common/middleware"
	"building-control/internal/planner/handlers"
	"building-control/internal/planner/repository"
	"building-control/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg := config.Load()

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	// ============================================================
	// Storage
	// ============================================================

	ctx := context.Background()
	repo, err := repository.Open(ctx, cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	log.Printf("Database ready (driver: %s)", cfg.DBDriver)

	buildings := service.NewBuildings(repo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		AppName:      "Planner Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check & Docs Routes
	// ============================================================

	handlers.NewHealth(buildings).Register(app)
	handlers.RegisterDocs(app)

	// ============================================================
	// Planner Routes
	// ============================================================

	api := app.Group("/api/v1")
	handlers.New(buildings, tuning).Register(api)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Planner Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
