package handler

import (
	"context"
	"net/http"
	"time"

	"comment-screener/internal/service"
	"comment-screener/internal/threshold"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModelHealth reports whether the remote model service is reachable.
type ModelHealth interface {
	HealthCheck(ctx context.Context) error
}

// Handler handles HTTP requests
type Handler struct {
	analyzer          *service.Analyzer
	batch             *service.BatchService
	model             ModelHealth
	defaultStrictness threshold.Strictness
	logger            *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	analyzer *service.Analyzer,
	batch *service.BatchService,
	model ModelHealth,
	defaultStrictness threshold.Strictness,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		analyzer:          analyzer,
		batch:             batch,
		model:             model,
		defaultStrictness: defaultStrictness,
		logger:            logger,
	}
}

// RegisterRoutes registers all API routes. Extra middleware (auth) applies
// to the /api/v1 group only.
func (h *Handler) RegisterRoutes(r *gin.Engine, middleware ...gin.HandlerFunc) {
	api := r.Group("/api/v1", middleware...)
	{
		api.POST("/analyze", h.Analyze)
		api.POST("/evaluate", h.Evaluate)
		api.POST("/reclassify", h.Reclassify)
		api.POST("/highlight", h.Highlight)

		api.POST("/batch/csv", h.UploadCSV)
		api.GET("/batch/exports", h.ListExports)
		api.GET("/batch/exports/:id", h.DownloadExport)
	}

	r.GET("/health", h.HealthCheck)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	model := "reachable"
	if h.model != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.model.HealthCheck(ctx); err != nil {
			h.logger.Warn("Model service health check failed", zap.Error(err))
			model = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "comment-screener",
		"model_service": model,
	})
}

// resolveStrictness validates an optional strictness, falling back to the default.
func (h *Handler) resolveStrictness(v *int) (threshold.Strictness, error) {
	if v == nil {
		return h.defaultStrictness, nil
	}
	s := threshold.Strictness(*v)
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s, nil
}

// queryStrictness reads ?strictness=, falling back to the default.
func (h *Handler) queryStrictness(c *gin.Context) (threshold.Strictness, error) {
	raw, ok := c.GetQuery("strictness")
	if !ok || raw == "" {
		return h.defaultStrictness, nil
	}
	return threshold.Parse(raw)
}
