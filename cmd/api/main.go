package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/harish-k-nagarajan/family-finance-sub000/internal/config"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/database"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/handlers"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/logger"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/middleware"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/services"
	"github.com/harish-k-nagarajan/family-finance-sub000/internal/validator"

	_ "github.com/harish-k-nagarajan/family-finance-sub000/internal/docs" // Import swagger docs
)

// @title           Family Finance API
// @version         1.0
// @description     Family Finance is a household dashboard for tracking bank accounts, investments, loans, and net worth, with amortization schedules and payoff projections.
// @termsOfService  http://swagger.io/terms/

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	snapshotService := services.NewSnapshotService(db, appConfig.ForecastGrowthRate)
	accountService := services.NewAccountService(db, snapshotService)
	investmentService := services.NewInvestmentService(db, snapshotService)
	loanService := services.NewLoanService(db, snapshotService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	loanHandler := handlers.NewLoanHandler(loanService, auditService)
	netWorthHandler := handlers.NewNetWorthHandler(snapshotService)

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
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile and household
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/household", authHandler.GetHousehold)
	protected.PUT("/household/home", authHandler.UpdateHome)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestmentByID)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Loan routes
	loans := protected.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoanByID)
	loans.PUT("/:id", loanHandler.UpdateLoan)
	loans.DELETE("/:id", loanHandler.DeleteLoan)
	loans.GET("/:id/schedule", loanHandler.GetSchedule)
	loans.GET("/:id/projection", loanHandler.GetProjection)
	loans.POST("/:id/payments", loanHandler.RecordPayment)
	loans.GET("/:id/payments", loanHandler.GetPayments)
	loans.DELETE("/:id/payments/:paymentId", loanHandler.DeletePayment)
	loans.POST("/:id/extra-payments", loanHandler.CreateExtraRule)
	loans.GET("/:id/extra-payments", loanHandler.GetExtraRules)
	loans.DELETE("/:id/extra-payments/:ruleId", loanHandler.DeleteExtraRule)

	// Net worth routes
	networth := protected.Group("/networth")
	networth.GET("", netWorthHandler.GetSummary)
	networth.POST("/snapshots", netWorthHandler.RecordSnapshot)
	networth.GET("/snapshots", netWorthHandler.GetSnapshots)
	networth.GET("/trend", netWorthHandler.GetTrend)
	networth.GET("/forecast", netWorthHandler.GetForecast)

	log.Infof("Starting Family Finance backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
