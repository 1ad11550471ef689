package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"senya/backend/cache"
	"senya/backend/config"
	"senya/backend/middleware"
	"senya/backend/routes"
	"senya/backend/services"
	"senya/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Output: os.Stdout, EnableColors: cfg.LogFormat != "json"})

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	opts := services.Options{Logger: logger, Retries: cfg.TxRetries}
	if cfg.RedisAddr != "" {
		progressCache, err := cache.New(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.ProgressCacheTTL,
		})
		if err != nil {
			logger.Printf("Progress cache disabled: %v", err)
		} else {
			defer progressCache.Close()
			opts.Cache = progressCache
		}
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger, cfg.LogFormat != "json"))

	// Setup routes
	routes.SetupRoutes(app, routes.Services{
		Progression: services.NewProgressionService(db, opts),
		Accounts:    services.NewAccountService(db, nil),
		Content:     services.NewContentService(db, opts.Cache, logger),
		Analytics:   services.NewAnalyticsService(db),
	}, cfg)

	// Start server
	logger.Fatal(app.Listen(":" + cfg.ServerPort))
}
