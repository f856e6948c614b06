package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/stitchfold/backend/internal/router"
	"github.com/stitchfold/backend/pkg/config"
	"github.com/stitchfold/backend/pkg/firebase"
	"github.com/stitchfold/backend/pkg/logger"
	"github.com/stitchfold/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		zapLogger.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	deps := router.Deps{
		Postgres: db.Postgres,
		Mongo:    db.Mongo,
		Redis:    db.Redis,
		Config:   cfg,
		Logger:   zapLogger,
	}

	// Initialize Firebase when credentials are configured; without them the
	// service falls back to local JWT auth and disables media uploads.
	if cfg.FirebaseCredentialsPath != "" {
		ctx := context.Background()
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
		if err != nil {
			zapLogger.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		deps.FirebaseAuth = firebaseApp.AuthClient
		deps.MediaBucket = firebaseApp.Bucket
		deps.BucketName = firebaseApp.BucketName
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, deps); err != nil {
		zapLogger.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
