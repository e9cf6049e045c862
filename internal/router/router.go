package router

import (
	"log"
	"net/http"

	"github.com/VictoriaMetrics/metrics"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/handlers"
	"github.com/chirper-app/backend/internal/middleware"
	"github.com/chirper-app/backend/internal/models"
	"github.com/chirper-app/backend/internal/repositories"
	"github.com/chirper-app/backend/internal/services"
	"github.com/chirper-app/backend/pkg/config"
	"github.com/chirper-app/backend/pkg/mailer"
)

// SetupMiddleware attaches the global middleware stack
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestMetrics())
}

// AutoMigrate creates or updates every table the application owns
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// SetupRoutes wires repositories, services and handlers and registers
// every route under /api/v1
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}
	log.Println("Database migrated")

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(db)
	tweetRepo := repositories.NewPostgresTweetRepository(db)
	retweetRepo := repositories.NewPostgresRetweetRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	mentionRepo := repositories.NewPostgresMentionRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	engagementRepo := repositories.NewPostgresEngagementRepository(db)
	resetTokenRepo := repositories.NewPostgresResetTokenRepository(db)
	log.Println("Repositories initialized")

	// Services
	notifier := services.NewNotifier(notificationRepo)
	mentionService := services.NewMentionService(userRepo, mentionRepo, notifier)
	feedService := services.NewFeedService(userRepo, followRepo, tweetRepo, retweetRepo, bookmarkRepo, engagementRepo)
	mail := mailer.LogMailer{}
	log.Println("Services initialized")

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, resetTokenRepo, notifier, mail, cfg)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	tweetHandler := handlers.NewTweetHandler(tweetRepo, commentRepo, engagementRepo, feedService, mentionService)
	commentHandler := handlers.NewCommentHandler(commentRepo, tweetRepo, notifier, mentionService)
	likeHandler := handlers.NewLikeHandler(likeRepo, tweetRepo, notifier)
	retweetHandler := handlers.NewRetweetHandler(retweetRepo, tweetRepo, notifier, mentionService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, tweetRepo, feedService)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	feedHandler := handlers.NewFeedHandler(feedService)
	mentionHandler := handlers.NewMentionHandler(mentionService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	log.Println("Handlers initialized")

	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		metrics.WritePrometheus(c.Response(), true)
		return nil
	})

	auth := e.Group("/api/v1/auth")
	authHandler.RegisterAuthRoutes(auth)

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authHandler.RegisterAccountRoutes(api)
	userHandler.RegisterUserRoutes(api)
	tweetHandler.RegisterTweetRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	retweetHandler.RegisterRetweetRoutes(api)
	bookmarkHandler.RegisterBookmarkRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	mentionHandler.RegisterMentionRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Routes registered")

	return nil
}
