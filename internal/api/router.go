package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/skyward/flightschool-api/docs"
	"github.com/skyward/flightschool-api/internal/api/handler"
	"github.com/skyward/flightschool-api/internal/api/middleware"
	"github.com/skyward/flightschool-api/internal/core/domain"
	"github.com/skyward/flightschool-api/internal/core/ports"
)

// Deps carries everything the router needs wired in by the entrypoint.
type Deps struct {
	AuthService ports.AuthService
	MediaStore  ports.MediaStore
	Limiter     handler.LoginLimiter
	Mongo       *mongo.Database
	Redis       *redis.Client
	TokenSecret string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("flightschool"))

	auth := middleware.Auth(deps.TokenSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Limiter, deps.Logger)
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/me", authHandler.Me, auth)

	// --- Admin user directory ---
	userHandler := handler.NewUserHandler(deps.AuthService)
	admin := e.Group("/v1/admin", auth, adminOnly)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)

	// --- School photos ---
	schoolHandler := handler.NewSchoolHandler(deps.MediaStore)
	e.POST("/v1/schools/:id/photo", schoolHandler.UploadPhoto, auth, adminOnly)
	e.DELETE("/v1/schools/:id/photo", schoolHandler.DeletePhoto, auth, adminOnly)

	// --- Route authorization probe (anonymous allowed) ---
	routesHandler := handler.NewRoutesHandler(deps.TokenSecret)
	e.GET("/v1/routes/authorize", routesHandler.Authorize)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
