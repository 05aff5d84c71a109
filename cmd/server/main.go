package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinocave/vinocave-backend/config"
	"github.com/vinocave/vinocave-backend/internal/app/controller"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/internal/db"
	"github.com/vinocave/vinocave-backend/internal/middleware"
	"github.com/vinocave/vinocave-backend/internal/router"
	"github.com/vinocave/vinocave-backend/internal/scheduler"
	"github.com/vinocave/vinocave-backend/internal/storage"
	"github.com/vinocave/vinocave-backend/internal/websocket"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"github.com/vinocave/vinocave-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting VINOCAVE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs the token blacklist and the recent-feed cache; the
	// server still works without it
	redisAvailable := true
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, running without feed cache and token blacklist", map[string]interface{}{
			"error": err.Error(),
		})
		redisAvailable = false
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	wineRepo := repository.NewWineRepository(db.GetDB())
	cellarRepo := repository.NewCellarRepository(db.GetDB())
	tastingRepo := repository.NewTastingRepository(db.GetDB())
	activityRepo := repository.NewActivityRepository(db.GetDB())
	snapshotRepo := repository.NewSnapshotRepository(db.GetDB())

	// Live feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	activityService := service.NewActivityService(activityRepo, hub, redisAvailable)
	cellarService := service.NewCellarService(cellarRepo, tastingRepo, activityService)
	tastingService := service.NewTastingService(tastingRepo, wineRepo, activityService)
	statsService := service.NewStatsService(cellarRepo, tastingRepo, snapshotRepo)

	// S3 storage for label photos
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	cellarController := controller.NewCellarController(cellarService)
	tastingController := controller.NewTastingController(tastingService)
	activityController := controller.NewActivityController(activityService, hub)
	statsController := controller.NewStatsController(statsService)
	uploadController := controller.NewUploadController(s3Storage)
	i18nController := controller.NewI18nController()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Daily cellar snapshots
	snapshotScheduler := scheduler.NewSnapshotScheduler(statsService)
	if err := snapshotScheduler.Start(); err != nil {
		logger.Error("Failed to start snapshot scheduler", err)
	}
	defer snapshotScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		cellarController,
		tastingController,
		activityController,
		statsController,
		uploadController,
		i18nController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
