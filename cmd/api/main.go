package main

import (
	"fmt"
	"net/http"
	"os"

	"midas/internal/config"
	"midas/internal/database"
	"midas/internal/feed"
	"midas/internal/handlers"
	"midas/internal/logger"
	"midas/internal/middleware"
	"midas/internal/ratelimit"
	"midas/internal/services"
	"midas/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "midas/internal/docs" // Import swagger docs
)

// @title           Midas API
// @version         1.0
// @description     Midas tracks a daily feed of wealth figures for a fixed population and derives "what this wealth could fund" comparisons against a catalog of real-world unit costs.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration; a weak pipeline credential fails startup here.
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	settingsService := services.NewSettingsService(db)
	if err := settingsService.Seed(); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	userService := services.NewUserService(db)
	if err := userService.Bootstrap(appConfig.AdminEmail, appConfig.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	entityService := services.NewEntityService(db)
	snapshotService := services.NewSnapshotService(db)
	catalogService := services.NewCatalogService(db)
	comparisonService := services.NewComparisonService(db, catalogService, snapshotService, settingsService)
	statsService := services.NewStatsService(db, snapshotService, settingsService)

	feedClient := feed.NewClient(appConfig.FeedURL, &http.Client{Timeout: appConfig.FeedTimeout})
	ingestService := services.NewIngestService(db, feedClient, entityService, snapshotService, comparisonService, settingsService)

	refreshLimiter := ratelimit.NewIntervalLimiter(appConfig.RefreshMinInterval)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	entityHandler := handlers.NewEntityHandler(entityService, snapshotService, comparisonService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, settingsService)
	statsHandler := handlers.NewStatsHandler(statsService, comparisonService)
	pipelineHandler := handlers.NewPipelineHandler(ingestService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)

	entities := v1.Group("/entities")
	entities.GET("", entityHandler.ListEntities)
	entities.GET("/:slug", entityHandler.GetEntity)
	entities.GET("/:slug/history", entityHandler.GetHistory)
	entities.GET("/:slug/comparisons", entityHandler.GetComparisons)

	v1.GET("/stats", statsHandler.GetFleetStats)
	v1.GET("/comparisons/preview", statsHandler.PreviewComparisons)

	// Pipeline routes (shared-secret, rate-gated trigger)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.GET("/refresh", middleware.RateGate(refreshLimiter, "refresh"), pipelineHandler.Refresh)
	pipeline.GET("/runs", pipelineHandler.ListRuns)

	// Admin routes (catalog and settings maintenance)
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.GET("/profile", authHandler.GetProfile)
	admin.POST("/costs", catalogHandler.CreateUnitCost)
	admin.GET("/costs", catalogHandler.ListUnitCosts)
	admin.PUT("/costs/:id", catalogHandler.UpdateUnitCost)
	admin.DELETE("/costs/:id", catalogHandler.DeleteUnitCost)
	admin.GET("/settings", catalogHandler.ListSettings)
	admin.PUT("/settings/:key", catalogHandler.UpdateSetting)

	log.Infof("Starting Midas backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
