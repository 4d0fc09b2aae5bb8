package httptransport

import (
	"log/slog"

	"github.com/dkarimov/user-account-service/internal/transport/http/handler"
	"github.com/dkarimov/user-account-service/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	JWTKey        []byte
	AuthRateRPS   float64
	AuthRateBurst int
}

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes, rate-limited against credential stuffing.
	auth := r.Group("/auth", middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst))
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Protected user management routes
	users := r.Group("/users", middleware.Auth(cfg.JWTKey))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return r
}
