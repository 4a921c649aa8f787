package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/quangdm-dev/socialnews-backend/internal/router"
	"github.com/quangdm-dev/socialnews-backend/pkg/config"
	"github.com/quangdm-dev/socialnews-backend/pkg/firebase"
	"github.com/quangdm-dev/socialnews-backend/pkg/logger"
	"github.com/quangdm-dev/socialnews-backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize store connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Structured logger for the pipeline
	zlog, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, firebaseApp, cfg, zlog)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
