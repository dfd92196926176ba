// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mittirang/mittirang-backend/internal/config"
	"github.com/mittirang/mittirang-backend/internal/handlers"
	"github.com/mittirang/mittirang-backend/internal/metrics"
	"github.com/mittirang/mittirang-backend/internal/middleware"
	"github.com/mittirang/mittirang-backend/internal/services"
	"github.com/mittirang/mittirang-backend/internal/utils"
)

const version = "1.0.0"

// Router is the HTTP engine together with the background workers it owns.
type Router struct {
	Engine *gin.Engine
	limits *middleware.RateLimits
}

// Close stops the rate limiter janitors.
func (r *Router) Close() {
	r.limits.Stop()
}

func Initialize(db *gorm.DB, cfg *config.Config, cache *services.CacheService) (*Router, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	authService := services.NewAuthService(db, cfg)
	productService := services.NewProductService(db, cache)
	dashboardService := services.NewDashboardService(db, productService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWT)
	productHandler := handlers.NewProductHandler(productService, storageService)
	adminHandler := handlers.NewAdminHandler(dashboardService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limits := middleware.NewRateLimits()
	adminRequired := middleware.AdminRequired(cfg.JWT.CookieName)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limits.General.Middleware())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"cache":   cache.Enabled(),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Public catalogue
		v1.GET("/products", productHandler.GetProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/catalogue/options", productHandler.CatalogueOptions)

		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", limits.Auth.Middleware(), authHandler.Login)
			auth.POST("/logout", adminRequired, authHandler.Logout)
			auth.GET("/me", adminRequired, authHandler.Me)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(adminRequired)
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)
			admin.DELETE("/products/:id/images/:index", productHandler.RemoveImage)
			admin.POST("/products/:id/sizes/:size", productHandler.ToggleSize)

			admin.POST("/uploads", limits.Upload.Middleware(), productHandler.UploadImage)
			admin.DELETE("/uploads/*key", productHandler.DeleteImage)
		}
	}

	// Local uploads are served by the API itself
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	return &Router{Engine: r, limits: limits}, nil
}
