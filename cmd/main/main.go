package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"backoffice-service/internal/config"
	"backoffice-service/internal/events"
	"backoffice-service/internal/handlers"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"backoffice-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logrus logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.StockMovement{},
		&models.MarketplaceOrder{},
		&models.MarketplaceReturn{},
		&models.Vendor{},
		&models.VendorPurchase{},
		&models.VendorPayment{},
		&models.PlatformPayout{},
		&models.Expense{},
		&models.WholesaleTier{},
		&models.Task{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis (optional - caching degrades gracefully when unset)
	redisClient := config.InitRedis(cfg)
	if redisClient == nil {
		log.Println("REDIS_ADDR not configured, caching disabled")
	}

	// Initialize NATS event publisher (optional - graceful degradation if NATS unavailable)
	var eventPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventPublisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("Warning: Failed to initialize NATS event publisher: %v", err)
			log.Println("Continuing without event publishing...")
			eventPublisher = nil
		} else {
			defer eventPublisher.Close()
		}
	} else {
		log.Println("NATS_URL not configured, event publishing disabled")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db, redisClient)
	orderRepo := repository.NewOrderRepository(db, productRepo)
	financeRepo := repository.NewFinanceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db, redisClient)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	importService := services.NewImportService(orderRepo, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(productRepo)
	productHandler := handlers.NewProductHandler(productRepo, eventPublisher)
	orderHandler := handlers.NewOrderHandler(orderRepo, productRepo)
	importHandler := handlers.NewImportHandler(importService, eventPublisher)
	financeHandler := handlers.NewFinanceHandler(financeRepo, productRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsRepo)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", healthHandler.ReadyCheck)

	// Protected API routes
	api := router.Group("/api/v1")
	switch cfg.AuthMode {
	case "development":
		api.Use(middleware.DevelopmentAuthMiddleware())
	default:
		api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}
	api.Use(middleware.TenantMiddleware())

	// Role gates: any staff member can write records, admins run imports
	// and destructive deletes.
	staffOnly := middleware.RequireRole("admin", "employee")
	adminOnly := middleware.RequireRole("admin")

	// Product catalog routes
	products := api.Group("/products")
	{
		products.POST("", staffOnly, productHandler.CreateProduct)
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", staffOnly, productHandler.UpdateProduct)
		products.DELETE("/:id", adminOnly, productHandler.DeleteProduct)
		products.POST("/:id/variants", staffOnly, productHandler.CreateVariant)
	}

	// Variant routes
	variants := api.Group("/variants")
	{
		variants.GET("/:id", productHandler.GetVariant)
		variants.PUT("/:id", staffOnly, productHandler.UpdateVariant)
		variants.DELETE("/:id", adminOnly, productHandler.DeleteVariant)
		variants.POST("/:id/stock", staffOnly, productHandler.AdjustStock)
		variants.GET("/:id/movements", productHandler.ListStockMovements)
		variants.POST("/:id/tiers", staffOnly, financeHandler.CreateTier)
		variants.GET("/:id/tiers", financeHandler.ListTiers)
		variants.DELETE("/:id/tiers/:tierId", adminOnly, financeHandler.DeleteTier)
		variants.GET("/:id/quote", financeHandler.GetPriceQuote)
	}

	// Stock routes
	stock := api.Group("/stock")
	{
		stock.GET("/low", productHandler.ListLowStock)
	}

	// Marketplace order routes
	orders := api.Group("/orders")
	{
		orders.POST("", staffOnly, orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/import/template", importHandler.GetOrderImportTemplate)
		orders.POST("/import", adminOnly, importHandler.ImportOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", staffOnly, orderHandler.UpdateOrderStatus)
		orders.DELETE("/:id", adminOnly, orderHandler.DeleteOrder)
	}

	// Marketplace return routes
	returns := api.Group("/returns")
	{
		returns.POST("", staffOnly, orderHandler.CreateReturn)
		returns.GET("", orderHandler.ListReturns)
		returns.GET("/import/template", importHandler.GetReturnImportTemplate)
		returns.POST("/import", adminOnly, importHandler.ImportReturns)
		returns.GET("/:id", orderHandler.GetReturn)
		returns.DELETE("/:id", adminOnly, orderHandler.DeleteReturn)
	}

	// Vendor routes
	vendors := api.Group("/vendors")
	{
		vendors.POST("", staffOnly, financeHandler.CreateVendor)
		vendors.GET("", financeHandler.ListVendors)
		vendors.GET("/:id", financeHandler.GetVendor)
		vendors.PUT("/:id", staffOnly, financeHandler.UpdateVendor)
		vendors.DELETE("/:id", adminOnly, financeHandler.DeleteVendor)
		vendors.POST("/:id/purchases", staffOnly, financeHandler.CreatePurchase)
		vendors.GET("/:id/purchases", financeHandler.ListPurchases)
		vendors.POST("/:id/payments", staffOnly, financeHandler.CreatePayment)
		vendors.GET("/:id/payments", financeHandler.ListPayments)
		vendors.GET("/:id/outstanding", financeHandler.GetVendorOutstanding)
	}

	// Platform payout routes
	payouts := api.Group("/payouts")
	{
		payouts.POST("", staffOnly, financeHandler.CreatePayout)
		payouts.GET("", financeHandler.ListPayouts)
		payouts.GET("/:id", financeHandler.GetPayout)
		payouts.DELETE("/:id", adminOnly, financeHandler.DeletePayout)
	}

	// Expense routes
	expenses := api.Group("/expenses")
	{
		expenses.POST("", staffOnly, financeHandler.CreateExpense)
		expenses.GET("", financeHandler.ListExpenses)
		expenses.DELETE("/:id", adminOnly, financeHandler.DeleteExpense)
	}

	// Task routes
	tasks := api.Group("/tasks")
	{
		tasks.POST("", staffOnly, taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", staffOnly, taskHandler.UpdateTask)
		tasks.PATCH("/:id/status", staffOnly, taskHandler.UpdateTaskStatus)
		tasks.DELETE("/:id", adminOnly, taskHandler.DeleteTask)
	}

	// Analytics routes
	analytics := api.Group("/analytics")
	{
		analytics.GET("/summary", analyticsHandler.GetSummary)
		analytics.GET("/sales-trend", analyticsHandler.GetSalesTrend)
		analytics.GET("/top-variants", analyticsHandler.GetTopVariants)
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Backoffice service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down backoffice-service...")
	log.Println("Backoffice service stopped")
}
