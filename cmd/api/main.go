package main

import (
	"context"
	"log"
	"strings"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/bootstrap"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Campus Lost and Found API
// @version         1.0
// @description     Lost-and-found and equipment lending backend for campus use.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Redis is optional: without it the rate limiter is disabled.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	}

	photos, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Upload directory setup failed: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	itemRepo := repository.NewItemRepository(db)
	borrowRepo := repository.NewBorrowRepository(db)
	reportedRepo := repository.NewReportedItemRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	postRepo := repository.NewPostRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	if err := bootstrap.SeedSuperadmin(context.Background(), cfg, userRepo); err != nil {
		log.Fatalf("Superadmin seed failed: %v", err)
	}

	authService := service.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret, cfg.TokenTTL)
	itemService := service.NewItemService(itemRepo, wsHub)
	borrowService := service.NewBorrowService(borrowRepo, itemRepo, notificationRepo, txManager, wsHub)
	claimService := service.NewClaimService(reportedRepo, claimRepo, txManager, wsHub)
	adminService := service.NewAdminService(userRepo)
	postService := service.NewPostService(postRepo, txManager)
	notificationService := service.NewNotificationService(notificationRepo)
	activityService := service.NewActivityService(borrowRepo, activityRepo)
	exportService := service.NewExportService(itemRepo, borrowRepo)
	limiter := service.NewRateLimiter(rdb, cfg.RateLimitAuth)

	auth := middleware.NewAuth(cfg.JWTSecret, sessionRepo)

	// Initialize Handlers
	authHandler := handler.NewAuthHandler(authService, auth, limiter)
	itemHandler := handler.NewItemHandler(itemService, borrowService, photos, auth)
	borrowHandler := handler.NewBorrowHandler(borrowService, auth)
	claimHandler := handler.NewClaimHandler(claimService, photos, auth)
	adminHandler := handler.NewAdminHandler(adminService, auth)
	postHandler := handler.NewPostHandler(postService, photos, auth)
	notificationHandler := handler.NewNotificationHandler(notificationService, auth)
	activityHandler := handler.NewActivityHandler(activityService, auth)
	exportHandler := handler.NewExportHandler(exportService, auth)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Uploaded photos
	router.Static("/uploads", cfg.UploadDir)

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, auth.Secret())
	})

	// Register API Routes
	authHandler.RegisterRoutes(router.Group(""))
	itemHandler.RegisterRoutes(router.Group(""))
	borrowHandler.RegisterRoutes(router.Group(""))
	claimHandler.RegisterRoutes(router.Group(""))
	adminHandler.RegisterRoutes(router.Group(""))
	postHandler.RegisterRoutes(router.Group(""))
	notificationHandler.RegisterRoutes(router.Group(""))
	activityHandler.RegisterRoutes(router.Group(""))
	exportHandler.RegisterRoutes(router.Group(""))

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
