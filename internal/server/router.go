package server

import (
	"fmt"

	"comment-screener/internal/config"
	"comment-screener/internal/handler"
	"comment-screener/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewLogger builds a zap logger for the configured logging mode.
func NewLogger(mode string) (*zap.Logger, error) {
	switch mode {
	case "", "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown logging mode %q", mode)
	}
}

// NewRouter assembles the gin engine: recovery, request logging and CORS for
// every route, JWT auth on the API group when enabled.
func NewRouter(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Logging.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	var apiMiddleware []gin.HandlerFunc
	if cfg.Auth.Enabled {
		apiMiddleware = append(apiMiddleware, middleware.AuthMiddleware([]byte(cfg.Auth.JWTSecret), logger))
		logger.Info("JWT authentication enabled for /api/v1")
	}

	h.RegisterRoutes(router, apiMiddleware...)
	return router
}
