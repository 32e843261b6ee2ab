package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fitpro-app/FitProBack/internal/config"
	"github.com/fitpro-app/FitProBack/internal/database"
	"github.com/fitpro-app/FitProBack/internal/repository"
	"github.com/fitpro-app/FitProBack/internal/routes"
	"github.com/fitpro-app/FitProBack/internal/storage"
)

func main() {
	ctx := context.Background()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	db, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// 3. Key-value store: Redis when configured, local file otherwise
	var kv storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisStore.Close()
		kv = redisStore
		log.Println("Connected to Redis")
	} else {
		fileStore, err := storage.NewFileStore(cfg.DataFile)
		if err != nil {
			log.Fatalf("Failed to open data file: %v", err)
		}
		kv = fileStore
		log.Printf("Using file store at %s", cfg.DataFile)
	}

	database.SeedDemoCredential(ctx, repository.NewCredentialRepository(db), cfg)

	// 4. Setup Fiber
	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	sessionService, profileController := routes.RegisterRoutes(app, cfg, db, kv)

	// 5. Restore a persisted session before serving
	identity, err := sessionService.Restore(ctx)
	if err != nil {
		log.Printf("Session restore failed: %v", err)
	} else if identity != nil {
		if _, err := profileController.Start(ctx, identity); err != nil {
			log.Printf("Profile preload failed: %v", err)
		} else {
			log.Printf("Restored session for %s", identity.Email)
		}
	}

	// 6. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
