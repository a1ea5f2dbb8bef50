package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/runjamaica/auth-api/internal/api/handler"
	"github.com/runjamaica/auth-api/internal/api/middleware"
	"github.com/runjamaica/auth-api/internal/core/ports"
	"github.com/runjamaica/auth-api/internal/core/service"
	"github.com/runjamaica/auth-api/internal/infrastructure/config"
	mongodb "github.com/runjamaica/auth-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, recorder ports.AuditRecorder, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	codec := service.NewJWTCodec(cfg.Token.AccessSecret, cfg.Token.AccessTTL, cfg.Token.RefreshSecret, cfg.Token.RefreshTTL)
	authService, err := service.NewAuthService(userRepo, hasher, codec, recorder, log)
	if err != nil {
		return nil, err
	}
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(codec)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/profile", authHandler.Profile, authMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
