package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/acme-invoicing/cache"
	"github.com/yourusername/acme-invoicing/config"
	"github.com/yourusername/acme-invoicing/handlers"
	"github.com/yourusername/acme-invoicing/middleware"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, cfg *config.Config, listingCache cache.ListingCacheInterface) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "acme-invoicing-api",
		})
	})

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db, cfg)
	router.POST("/login", authHandler.Login)
	router.POST("/auth/refresh", authHandler.Refresh)

	// Dashboard endpoints
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg, listingCache)
	seedHandler := handlers.NewSeedHandler(db)

	dashboard := router.Group("/dashboard", middleware.JwtAuthMiddleware(cfg))
	{
		dashboard.GET("/invoices", invoiceHandler.ListInvoices)
		dashboard.POST("/invoices", invoiceHandler.CreateInvoice)
		dashboard.PUT("/invoices/:id", invoiceHandler.UpdateInvoice)
		dashboard.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)
		dashboard.GET("/customers", invoiceHandler.ListCustomers)
		dashboard.POST("/seed", middleware.RequireRole("admin"), seedHandler.Seed)
	}

	return router
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis backs the invoice listing cache
	rdb := config.InitRedis(cfg)
	listingCache := cache.NewListingCache(rdb, cfg.ListingCacheTTL)

	router := setupRouter(db, cfg, listingCache)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting acme-invoicing API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
