// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storeadmin/internal/config"
	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/actions"
	"storeadmin/internal/domain/dashboard"
	"storeadmin/internal/domain/listing"
	"storeadmin/internal/infrastructure/http/v1/handlers"
	"storeadmin/internal/infrastructure/http/v1/middleware"
	"storeadmin/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	Listing   *listing.Service
	Dashboard *dashboard.Service
	Actions   *actions.Service

	// Metrics instruments requests and serves /metrics; optional.
	Metrics interface {
		Middleware() gin.HandlerFunc
		Handler() http.Handler
	}

	// ReadyChecks run on /health/ready.
	ReadyChecks map[string]handlers.Check

	WorkingHours config.WorkingHours

	// Now is the clock for the dashboard and working hours; defaults to time.Now.
	Now func() time.Time
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.ReadyChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTValidator))
	v1.Use(middleware.WorkingHours(cfg.WorkingHours, cfg.Now))
	{
		base := handlers.NewBaseHandler()
		lists := handlers.NewListHandler(base, cfg.Listing)
		actionHandler := handlers.NewActionHandler(base, cfg.Actions)

		RegisterEntityRoutes(v1.Group("/products"), domain.EntityProduct, lists.Products, actionHandler)
		RegisterEntityRoutes(v1.Group("/sales"), domain.EntitySale, lists.Sales, actionHandler)
		RegisterEntityRoutes(v1.Group("/customers"), domain.EntityCustomer, lists.Customers, actionHandler)

		admin := v1.Group("")
		admin.Use(middleware.RequireRole(appctx.RoleAdministrator))
		RegisterEntityRoutes(admin.Group("/buys"), domain.EntityBuy, lists.Buys, actionHandler)
		RegisterEntityRoutes(admin.Group("/suppliers"), domain.EntitySupplier, lists.Suppliers, actionHandler)
		RegisterEntityRoutes(admin.Group("/users"), domain.EntityUser, lists.Users, actionHandler)

		dash := handlers.NewDashboardHandler(base, cfg.Dashboard, cfg.Now)
		v1.GET("/dashboard", dash.Get)
		v1.POST("/confirmations/:id", actionHandler.Resolve)
	}

	return router
}
