// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vastra/catalog-backend/internal/config"
	"github.com/vastra/catalog-backend/internal/handlers"
	"github.com/vastra/catalog-backend/internal/middleware"
	"github.com/vastra/catalog-backend/internal/services"
	"github.com/vastra/catalog-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	pricingEngine := services.NewPricingEngine(cfg.Pricing.MinorUnits)
	catalogService := services.NewCatalogService(db, pricingEngine)
	approvalService := services.NewApprovalService(db)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService, pricingEngine)
	adminHandler := handlers.NewAdminHandler(catalogService, approvalService, pricingEngine)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Storefront and vendor product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)

			// Authenticated routes
			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.WriteRateLimit(), productHandler.CreateProduct)
				protected.PUT("/:id", middleware.WriteRateLimit(), productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.PUT("/:id/publish", productHandler.PublishProduct)
				protected.POST("/variants/expand", productHandler.ExpandVariants)
			}
		}

		// Vendor console routes
		vendor := v1.Group("/vendor")
		vendor.Use(middleware.AuthRequired())
		{
			vendor.GET("/products", productHandler.VendorProducts)
		}

		// Admin console routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", adminHandler.GetProducts)
				adminProducts.GET("/pending", adminHandler.GetPendingProducts)
				adminProducts.PUT("/:id/approve", adminHandler.ApproveProduct)
				adminProducts.PUT("/:id/reject", adminHandler.RejectProduct)
				adminProducts.PUT("/:id/publish", productHandler.PublishProduct)
			}
		}
	}

	return r
}
