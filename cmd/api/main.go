package main

import (
	"fmt"
	"net/http"
	"os"

	"spendlog/internal/config"
	"spendlog/internal/database"
	"spendlog/internal/handlers"
	"spendlog/internal/logger"
	"spendlog/internal/middleware"
	"spendlog/internal/services"
	"spendlog/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendlog/internal/docs" // Import swagger docs
)

// @title           Spendlog API
// @version         1.0
// @description     Spendlog is an expense-tracking API managing users, currencies, categories, and expense records.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Load configuration
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
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	currencyService := services.NewCurrencyService(db)
	categoryService := services.NewCategoryService(db)
	recordService := services.NewRecordService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	currencyHandler := handlers.NewCurrencyHandler(currencyService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	recordHandler := handlers.NewRecordHandler(recordService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login)
	v1.GET("/currency", currencyHandler.GetCurrencies)
	v1.POST("/currency", currencyHandler.CreateCurrency)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User routes
	protected.GET("/users", userHandler.GetAllUsers)
	protected.GET("/user/:id", userHandler.GetUserByID)
	protected.DELETE("/user/:id", userHandler.DeleteUser)

	// Category routes
	protected.GET("/category", categoryHandler.GetCategories)
	protected.POST("/category", categoryHandler.CreateCategory)
	protected.DELETE("/category/:id", categoryHandler.DeleteCategory)

	// Record routes
	protected.GET("/record", recordHandler.ListRecords)
	protected.POST("/record", recordHandler.CreateRecord)
	protected.GET("/record/:id", recordHandler.GetRecordByID)
	protected.DELETE("/record/:id", recordHandler.DeleteRecord)

	log.Infof("Starting Spendlog backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
