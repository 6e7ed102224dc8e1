package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	"tally/internal/database"
	apperrors "tally/internal/errors"
	"tally/internal/handlers"
	"tally/internal/logger"
	"tally/internal/middleware"
	"tally/internal/receipt"
	"tally/internal/services"
	"tally/internal/validator"
	"tally/internal/vision"
)

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

	// Run migrations, then repair any text dates left by older versions
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := dbManager.NormalizeLegacyDates(); err != nil {
		return fmt.Errorf("failed to normalize legacy dates: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db)
	reportService := services.NewReportService(db)

	if appConfig.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set; receipt analysis will fail until configured")
	}
	analyzer := vision.NewOpenAIClient(appConfig.OpenAIKey, appConfig.OpenAIModel)
	extractor := receipt.NewRegexExtractor()

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	reportHandler := handlers.NewReportHandler(reportService)
	noteHandler := handlers.NewNoteHandler(ledgerService)
	receiptHandler := handlers.NewReceiptHandler(analyzer, extractor, ledgerService)

	// Register custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		if err := dbManager.Ping(); err != nil {
			appErr := apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
			c.JSON(appErr.StatusCode, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("", transactionHandler.ClearTransactions)

	v1.GET("/categories", transactionHandler.GetCategories)
	v1.GET("/balance", transactionHandler.GetBalance)
	v1.POST("/balance/snapshots", transactionHandler.CreateBalanceSnapshot)
	v1.POST("/demo-data", transactionHandler.SeedDemoData)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/monthly", reportHandler.GetMonthlySpending)
	reports.GET("/daily", reportHandler.GetDailySpending)
	reports.GET("/cumulative", reportHandler.GetCumulativeSpending)
	reports.GET("/by-category", reportHandler.GetExpensesByCategory)
	reports.GET("/by-month", reportHandler.GetExpensesByMonth)
	reports.GET("/by-tag", reportHandler.GetExpensesByTag)
	reports.GET("/by-category-and-month", reportHandler.GetExpensesByCategoryAndMonth)

	// Note routes
	notes := v1.Group("/notes")
	notes.POST("", noteHandler.CreateNote)
	notes.GET("", noteHandler.GetNotes)
	notes.GET("/dates", noteHandler.GetNoteDates)
	notes.DELETE("/:id", noteHandler.DeleteNote)

	// Receipt routes
	receipts := v1.Group("/receipts")
	receipts.POST("/analyze", receiptHandler.AnalyzeReceipt)
	receipts.POST("/confirm", receiptHandler.ConfirmReceipt)

	log.Infof("Starting tally server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
