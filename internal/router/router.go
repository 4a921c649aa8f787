package router

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/quangdm-dev/socialnews-backend/internal/aggregator"
	"github.com/quangdm-dev/socialnews-backend/internal/cache"
	"github.com/quangdm-dev/socialnews-backend/internal/events"
	"github.com/quangdm-dev/socialnews-backend/internal/handlers"
	"github.com/quangdm-dev/socialnews-backend/internal/middleware"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"github.com/quangdm-dev/socialnews-backend/internal/push"
	"github.com/quangdm-dev/socialnews-backend/internal/repositories"
	"github.com/quangdm-dev/socialnews-backend/pkg/config"
	"github.com/quangdm-dev/socialnews-backend/pkg/firebase"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes wires the notification pipeline and registers all routes
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseApp *firebase.App, cfg *config.Config, logger *zap.SugaredLogger) {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.DeviceToken{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	deviceTokenRepo := repositories.NewPostgresDeviceTokenRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))

	// --- Notification pipeline ---
	eventStore := events.NewRedisStore(db.Redis, time.Duration(cfg.EventTTLSeconds)*time.Second)
	redisCache := cache.New(db.Redis, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	dispatcher := push.NewDispatcher(firebaseApp.MessagingClient, logger)
	agg := aggregator.New(
		eventStore,
		postRepo,
		notificationRepo,
		deviceTokenRepo,
		dispatcher,
		aggregator.TimerScheduler{},
		time.Duration(cfg.NotificationWindowSeconds)*time.Second,
		logger,
	)
	log.Println("Notification aggregation pipeline configured.")

	// --- Unprotected routes (internal ingress + device registration) ---
	public := e.Group("/functions/v1")
	eventHandler := handlers.NewNotificationEventHandler(agg)
	eventHandler.RegisterEventRoutes(public)
	deviceTokenHandler := handlers.NewDeviceTokenHandler(deviceTokenRepo)
	deviceTokenHandler.RegisterDeviceTokenRoutes(public)
	log.Println("Event ingress and device registration routes configured.")

	// --- Protected routes (require a verified bearer token) ---
	api := e.Group("/functions/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseApp.AuthClient))

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, agg, redisCache, logger)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, agg, redisCache, logger)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, redisCache, logger)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
