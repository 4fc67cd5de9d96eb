package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/mailer"
	"github.com/Ougobatec/Breezy-sub000/internal/media"
	"github.com/Ougobatec/Breezy-sub000/internal/router"
	"github.com/Ougobatec/Breezy-sub000/internal/sessions"
	"github.com/Ougobatec/Breezy-sub000/pkg/config"
	"github.com/Ougobatec/Breezy-sub000/pkg/firebase"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
	"github.com/Ougobatec/Breezy-sub000/pkg/validators"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.Init(&logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.L().Sync()
	log := logging.L()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	ctx := context.Background()

	// Session revocation list (nil when Redis is disabled)
	revoker, err := sessions.NewRevoker(&cfg.Redis, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	if err != nil {
		log.Fatal("Failed to connect session store", zap.Error(err))
	}
	defer revoker.Close()

	// Media storage backend
	mediaStore, err := media.NewStoreFromConfig(ctx, cfg.Media)
	if err != nil {
		log.Fatal("Failed to initialize media store", zap.Error(err))
	}

	// Outbound mail (no-op when disabled)
	mail := mailer.New(&cfg.Mail, log)

	// Federated login is optional
	var firebaseAuth *auth.Client
	if cfg.Firebase.CredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		firebaseAuth = firebaseApp.AuthClient
	} else {
		log.Info("Firebase credentials not configured, federated login disabled")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	err = router.SetupRoutes(e, router.Deps{
		Config:       cfg,
		DB:           db,
		FirebaseAuth: firebaseAuth,
		Revoker:      revoker,
		MediaStore:   mediaStore,
		Mailer:       mail,
	})
	if err != nil {
		log.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Start server
	log.Info("Starting Breezy API server", zap.String("port", cfg.Server.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
