package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/khadamat/marketplace-api/docs"
	"github.com/khadamat/marketplace-api/internal/api/handler"
	"github.com/khadamat/marketplace-api/internal/api/middleware"
	"github.com/khadamat/marketplace-api/internal/api/session"
	"github.com/khadamat/marketplace-api/internal/core/domain"
	"github.com/khadamat/marketplace-api/internal/core/service"
	"github.com/khadamat/marketplace-api/internal/core/token"
	"github.com/khadamat/marketplace-api/internal/infrastructure/config"
	"github.com/khadamat/marketplace-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/khadamat/marketplace-api/internal/infrastructure/db/redis"
	"github.com/khadamat/marketplace-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := postgres.NewAuthRepository(pool, cfg.Postgres.Timeout)
	profileRepo := postgres.NewProfileRepository(pool, cfg.Postgres.Timeout)
	serviceRepo := postgres.NewServiceRepository(pool, cfg.Postgres.Timeout)
	orderRepo := postgres.NewOrderRepository(pool, cfg.Postgres.Timeout)
	throttle := redisinfra.NewLoginThrottle(rdb)

	codec := token.NewCodec(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, profileRepo, throttle, codec, cfg.TokenTTL, logger.For("auth"))
	adminService := service.NewAdminService(userRepo, logger.For("admin"))
	catalogService := service.NewCatalogService(serviceRepo, logger.For("catalog"))
	orderService := service.NewOrderService(orderRepo, serviceRepo, logger.For("orders"))

	transport := session.NewTransport(cfg.Production())
	authHandler := handler.NewAuthHandler(authService, transport)
	adminHandler := handler.NewAdminHandler(adminService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	requireAuth := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// --- Auth routes ---
	e.POST("/v1/auth/signup", authHandler.Signup)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)

	// --- Session self-service ---
	me := e.Group("/v1/me", requireAuth)
	me.GET("", authHandler.Me)
	me.PUT("/password", authHandler.ChangePassword)

	// --- Service catalog: reads are public, mutations need a session ---
	e.GET("/v1/services", serviceHandler.List, optionalAuth)
	e.GET("/v1/services/:id", serviceHandler.Get, optionalAuth)
	e.POST("/v1/services", serviceHandler.Create, requireAuth)
	e.PUT("/v1/services/:id", serviceHandler.Update, requireAuth)
	e.DELETE("/v1/services/:id", serviceHandler.Delete, requireAuth)

	// --- Orders ---
	orders := e.Group("/v1/orders", requireAuth)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)

	// --- Admin back office ---
	admin := e.Group("/v1/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/suspension", adminHandler.SetSuspension)
	admin.PUT("/users/:id/password", adminHandler.ResetPassword)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
