package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/miniorder/order-system/docs"
	"github.com/miniorder/order-system/internal/api/handler"
	"github.com/miniorder/order-system/internal/api/middleware"
	"github.com/miniorder/order-system/internal/core/ports"
)

// RouterConfig carries everything the HTTP layer needs. Services are built by
// the caller so the background sweeper can share the same order service.
type RouterConfig struct {
	AuthService  ports.AuthService
	OrderService ports.OrderService
	Limiter      middleware.RateLimiter
	JWTSecret    string
	HealthChecks map[string]handler.CheckFunc
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("orders"))

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	orderHandler := handler.NewOrderHandler(cfg.OrderService)
	healthHandler := handler.NewHealthHandler(cfg.HealthChecks)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	limit := func(scope string, perMinute int) echo.MiddlewareFunc {
		return middleware.RateLimit(cfg.Limiter, scope, perMinute, time.Minute, cfg.Log)
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, limit("register", 5))
	e.POST("/auth/login", authHandler.Login, limit("login", 10))
	e.POST("/auth/refresh", authHandler.Refresh, limit("refresh", 10))

	// --- Order routes (authenticated) ---
	orders := e.Group("/v1/orders", authMiddleware)
	orders.POST("", orderHandler.Create, limit("order_create", 10))
	orders.GET("", orderHandler.List, limit("order_list", 30))
	orders.PATCH("/:id/cancel", orderHandler.Cancel, limit("order_cancel", 10))

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
