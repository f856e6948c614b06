package router

import (
	"time"

	"cloud.google.com/go/storage"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/cache"
	"github.com/stitchfold/backend/internal/handlers"
	"github.com/stitchfold/backend/internal/middleware"
	"github.com/stitchfold/backend/internal/models"
	"github.com/stitchfold/backend/internal/repositories"
	"github.com/stitchfold/backend/pkg/config"
)

const followerCacheTTL = 5 * time.Minute

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
}

// Deps carries the external collaborators the routes need.
type Deps struct {
	Postgres     *gorm.DB
	Mongo        *mongo.Client
	Redis        *redis.Client
	FirebaseAuth *auth.Client
	MediaBucket  *storage.BucketHandle
	BucketName   string
	Config       *config.Config
	Logger       *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) error {
	// AutoMigrate PostgreSQL models
	err := deps.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.WishlistItem{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	deps.Logger.Info("PostgreSQL auto-migrations completed")

	mongoDB := deps.Mongo.Database("stitchfold")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewGormUserRepository(deps.Postgres)
	followRepo := repositories.NewGormFollowRepository(deps.Postgres)
	likeRepo := repositories.NewGormLikeRepository(deps.Postgres)
	productRepo := repositories.NewGormProductRepository(deps.Postgres)
	cartRepo := repositories.NewGormCartRepository(deps.Postgres)
	orderRepo := repositories.NewGormOrderRepository(deps.Postgres)
	wishlistRepo := repositories.NewGormWishlistRepository(deps.Postgres)
	notificationRepo := repositories.NewGormNotificationRepository(deps.Postgres)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	chatRepo := repositories.NewMongoChatRepository(mongoDB)

	var followerCache *cache.FollowerCache
	if deps.Redis != nil {
		followerCache = cache.NewFollowerCache(deps.Redis, followerCacheTTL)
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, deps.FirebaseAuth)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if deps.Config.AuthMode == "firebase" && deps.FirebaseAuth != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuth))
		deps.Logger.Info("Firebase authentication middleware applied to /api/v1 group")
	} else {
		api.Use(middleware.JWTAuthMiddleware())
		deps.Logger.Info("JWT authentication middleware applied to /api/v1 group")
	}

	// User profile and designer routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo, followerCache, deps.Logger)
	followHandler.RegisterFollowRoutes(api)

	// Post and reels routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(api)

	// Storefront routes
	productHandler := handlers.NewProductHandler(productRepo, userRepo)
	productHandler.RegisterProductRoutes(api)

	cartHandler := handlers.NewCartHandler(cartRepo)
	cartHandler.RegisterCartRoutes(api)

	orderHandler := handlers.NewOrderHandler(orderRepo, notificationRepo)
	orderHandler.RegisterOrderRoutes(api)

	wishlistHandler := handlers.NewWishlistHandler(wishlistRepo, productRepo)
	wishlistHandler.RegisterWishlistRoutes(api)

	// Chat routes
	chatHandler := handlers.NewChatHandler(chatRepo, userRepo)
	chatHandler.RegisterChatRoutes(api)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// Media upload routes
	mediaHandler := handlers.NewMediaHandler(deps.MediaBucket, deps.BucketName)
	mediaHandler.RegisterMediaRoutes(api)

	deps.Logger.Info("All routes configured")
	return nil
}
