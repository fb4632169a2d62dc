package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"edustore-service/config"
	"edustore-service/internal/database"
	"edustore-service/internal/handlers"
	"edustore-service/internal/middleware"
	"edustore-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	cfg := config.Load()

	// Initialize Database
	db := database.Connect(cfg)
	database.Migrate(db)

	// Redis/Asynq Client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	// Init Services
	helperService := services.NewHelperService(db)
	mailerService := services.NewMailerService(asynqClient)
	razorpayService := services.NewRazorpayService(cfg)

	userService := services.NewUserService(db, cfg.JWTSecret)
	catalogService := services.NewCatalogService(db)
	affiliateService := services.NewAffiliateService(db, userService)
	checkoutService := services.NewCheckoutService(db, catalogService, userService, razorpayService)
	settlementService := services.NewSettlementService(db, razorpayService, helperService, mailerService)
	withdrawalService := services.NewWithdrawalService(db, mailerService)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, settlementService)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService, dashboardService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, userService)
	adminHandler := handlers.NewAdminHandler(userService, dashboardService, settlementService)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to EduStore service",
		})
	})

	// Public routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/courses", catalogHandler.ListCourses)
	r.GET("/ebooks", catalogHandler.ListEbooks)
	r.GET("/items/:type/:id", catalogHandler.GetItem)

	r.GET("/ref/:refCode/:type/:id", affiliateHandler.RecordClick)

	r.GET("/checkout/:type/:id", checkoutHandler.GetCheckoutPage)
	r.POST("/checkout", checkoutHandler.Checkout)
	r.GET("/payments/:orderId/status", checkoutHandler.PaymentStatus)
	r.POST("/webhooks/razorpay", checkoutHandler.Webhook)

	// Authenticated routes
	auth := r.Group("/", middleware.RequireAuth(cfg.JWTSecret))
	{
		auth.GET("/me", authHandler.Me)
		auth.GET("/dashboard", affiliateHandler.Dashboard)
		auth.POST("/affiliate/links", affiliateHandler.CreateLink)
		auth.POST("/withdrawals", withdrawalHandler.Request)
	}

	// Admin routes
	admin := r.Group("/admin", middleware.RequireAuth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/purchases", adminHandler.CreatePurchase)
		admin.PATCH("/purchases/:id/buyer", adminHandler.AttachBuyer)
		admin.GET("/withdrawals", withdrawalHandler.List)
		admin.PATCH("/withdrawals/:id", withdrawalHandler.Resolve)
	}

	// Start Cron Schedulers
	archiveService := services.NewArchiveService(db)
	archiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
