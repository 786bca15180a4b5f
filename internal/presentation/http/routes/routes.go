package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/config"
	domainRepo "github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/handler"
	"github.com/skbavi/supermarket-pos-api/internal/presentation/http/middleware"
	"github.com/skbavi/supermarket-pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Supplier    *handler.SupplierHandler
	User        *handler.UserHandler
	Transaction *handler.TransactionHandler
	Analytics   *handler.AnalyticsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Analytics.Dashboard)
	protected.GET("/analytics/sales", h.Analytics.Dashboard)

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	// Categories
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}

	// Users (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.UpdateRole)
		users.DELETE("/:id", h.User.Delete)
	}

	// Transactions. Creation is idempotency-protected so a double submit
	// of the same draft yields one ledger entry.
	transactions := protected.Group("/transactions")
	{
		idempotent := transactions.Group("")
		idempotent.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		idempotent.POST("", h.Transaction.Create)

		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/preview", h.Transaction.Preview)
		transactions.DELETE("/:id", h.Transaction.Delete)
		transactions.GET("/:id/receipt", h.Transaction.Receipt)
		transactions.POST("/:id/print", h.Transaction.PrintReceipt)
	}

	// Printer
	protected.GET("/printer/status", h.Transaction.PrinterStatus)
}
