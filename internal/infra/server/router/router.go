// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/field-console/backend/internal/integration/entrypoint/controller"
	"github.com/field-console/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	memberController     *controller.MemberController
	sheetController      *controller.SheetController
	collectionController *controller.CollectionController
	saleController       *controller.SaleController
	dashboardController  *controller.DashboardController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	memberController *controller.MemberController,
	sheetController *controller.SheetController,
	collectionController *controller.CollectionController,
	saleController *controller.SaleController,
	dashboardController *controller.DashboardController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		memberController:     memberController,
		sheetController:      sheetController,
		collectionController: collectionController,
		saleController:       saleController,
		dashboardController:  dashboardController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Member routes (require authentication)
		if r.memberController != nil && r.authMiddleware != nil {
			members := v1.Group("/members")
			members.Use(r.authMiddleware.Authenticate())
			{
				members.GET("", r.memberController.List)
				members.POST("", r.memberController.Create)
				members.GET("/:id/ledger", r.memberController.Ledger)
			}
		}

		// Collection sheet routes (require authentication)
		if r.sheetController != nil && r.authMiddleware != nil {
			sheet := v1.Group("/sheet")
			sheet.Use(r.authMiddleware.Authenticate())
			{
				sheet.GET("", r.sheetController.Get)
			}
		}

		// Collection record routes (require authentication)
		if r.collectionController != nil && r.authMiddleware != nil {
			collections := v1.Group("/collections")
			collections.Use(r.authMiddleware.Authenticate())
			{
				collections.POST("", r.collectionController.Record)
			}
		}

		// Product sale routes (require authentication)
		if r.saleController != nil && r.authMiddleware != nil {
			sales := v1.Group("/sales")
			sales.Use(r.authMiddleware.Authenticate())
			{
				sales.POST("", r.saleController.Register)
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/daily-collection", r.dashboardController.DailyCollection)
				dashboard.GET("/daily-savings", r.dashboardController.DailySavings)
				dashboard.GET("/outstanding", r.dashboardController.Outstanding)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
