package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Ougobatec/Breezy-sub000/internal/handlers"
	"github.com/Ougobatec/Breezy-sub000/internal/mailer"
	"github.com/Ougobatec/Breezy-sub000/internal/media"
	"github.com/Ougobatec/Breezy-sub000/internal/middleware"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
	"github.com/Ougobatec/Breezy-sub000/internal/notify"
	"github.com/Ougobatec/Breezy-sub000/internal/repositories"
	"github.com/Ougobatec/Breezy-sub000/internal/sessions"
	"github.com/Ougobatec/Breezy-sub000/pkg/config"
	"github.com/Ougobatec/Breezy-sub000/pkg/logging"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// Deps carries the boundary collaborators injected at process start
type Deps struct {
	Config       *config.Config
	DB           *config.DB
	FirebaseAuth *auth.Client // nil when federated login is not configured
	Revoker      *sessions.Revoker
	MediaStore   media.Store
	Mailer       *mailer.Mailer
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) error {
	log := logging.L()

	// AutoMigrate PostgreSQL models
	err := deps.DB.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Notification{},
		&models.PasswordReset{},
	)
	if err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded media (filesystem backend)
	if deps.Config.Media.Backend == "filesystem" {
		e.Static("/media", deps.Config.Media.Root)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.DB.Postgres)
	postRepo := repositories.NewMongoPostRepository(deps.DB.Content)
	commentRepo := repositories.NewMongoCommentRepository(deps.DB.Content)
	followRepo := repositories.NewPostgresFollowRepository(deps.DB.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.DB.Postgres)

	notifier := notify.New(notificationRepo, log)
	maxUpload := deps.Config.Media.MaxUploadBytes

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, deps.FirebaseAuth, deps.Mailer, deps.Revoker, deps.Config.JWT)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(deps.Config.JWT.Secret, deps.Revoker))

	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo, followRepo, deps.MediaStore, maxUpload)
	userHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, commentRepo, userRepo, followRepo, notifier, deps.MediaStore, maxUpload)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	followHandler.RegisterFollowRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	searchHandler := handlers.NewSearchHandler(userRepo, postRepo)
	searchHandler.RegisterSearchRoutes(api)

	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, commentRepo, notifier, deps.Revoker)
	adminHandler.RegisterAdminRoutes(api)

	log.Info("All routes configured", zap.Int("routes", len(e.Routes())))
	return nil
}
