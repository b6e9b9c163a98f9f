package handler

import (
	"errors"
	"net/http"

	"comment-screener/internal/highlight"
	"comment-screener/internal/models"
	"comment-screener/internal/service"
	"comment-screener/internal/threshold"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientIDHeader scopes stale-request cancellation to one client.
const ClientIDHeader = "X-Client-ID"

// Analyze handles POST /api/v1/analyze: remote score, local triggers.
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strictness, err := h.resolveStrictness(req.Strictness)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), c.GetHeader(ClientIDHeader), req.Text, strictness)
	switch {
	case errors.Is(err, service.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "verdict": nil})
		return
	case errors.Is(err, service.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "verdict": nil})
		return
	case errors.Is(err, service.ErrNoVerdict):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrNoVerdict.Error(), "verdict": nil})
		return
	case err != nil:
		h.logger.Error("Failed to analyze comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed", "verdict": nil})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Evaluate handles POST /api/v1/evaluate: lexicon-only scoring.
func (h *Handler) Evaluate(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strictness, err := h.resolveStrictness(req.Strictness)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.analyzer.Evaluate(req.Text, strictness))
}

// Reclassify handles POST /api/v1/reclassify: re-labels a score for a new
// strictness without rescoring.
func (h *Handler) Reclassify(c *gin.Context) {
	var req models.ReclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := *req.Score
	if score < 0 || score > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be between 0 and 1"})
		return
	}

	strictness, err := h.resolveStrictness(req.Strictness)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cls := threshold.Classify(score, strictness)
	c.JSON(http.StatusOK, gin.H{
		"level":              cls.Level,
		"label":              cls.Label,
		"message":            cls.Message,
		"score":              score,
		"confidence_percent": models.PercentOf(score),
		"strictness":         int(strictness),
		"strictness_label":   strictness.Description(),
	})
}

// Highlight handles POST /api/v1/highlight.
func (h *Handler) Highlight(c *gin.Context) {
	var req models.HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.HighlightResponse{
		Segments: highlight.Annotate(req.Text, req.Triggers),
		Inline:   highlight.InlineMark(req.Text, req.Triggers),
	})
}
