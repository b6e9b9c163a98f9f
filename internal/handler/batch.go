package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"comment-screener/internal/csvbatch"
	"comment-screener/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxUploadBytes caps the size of an uploaded CSV.
const MaxUploadBytes = 10 << 20

// UploadCSV handles POST /api/v1/batch/csv. The table comes either as a
// multipart "file" field or as the raw request body.
func (h *Handler) UploadCSV(c *gin.Context) {
	strictness, err := h.queryStrictness(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, fileName, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exp, err := h.batch.Process(raw, fileName, strictness)
	var perr *csvbatch.ParseError
	switch {
	case errors.Is(err, csvbatch.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV appears empty."})
		return
	case errors.Is(err, csvbatch.ErrMissingColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No column named comment/text detected."})
		return
	case errors.As(err, &perr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to parse CSV. Please try again."})
		return
	case err != nil:
		h.logger.Error("Failed to process CSV batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "batch processing failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"export_id":    exp.ID,
		"file_name":    exp.FileName,
		"row_count":    exp.RowCount,
		"status":       exp.Status,
		"download_url": "/api/v1/batch/exports/" + exp.ID,
	})
}

// ListExports handles GET /api/v1/batch/exports.
func (h *Handler) ListExports(c *gin.Context) {
	exports, err := h.batch.ListExports()
	if err != nil {
		h.logger.Error("Failed to list exports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exports": exports,
		"total":   len(exports),
	})
}

// DownloadExport handles GET /api/v1/batch/exports/:id.
func (h *Handler) DownloadExport(c *gin.Context) {
	exp, err := h.batch.GetExport(c.Param("id"))
	if errors.Is(err, repository.ErrExportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "export not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to load export", zap.String("export_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.FileName}))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(exp.Content))
}

func readUpload(c *gin.Context) (string, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", "", fmt.Errorf("missing file field: %w", err)
		}
		f, err := fh.Open()
		if err != nil {
			return "", "", fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", "", fmt.Errorf("failed to read upload: %w", err)
		}
		return string(data), fh.Filename, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), c.Query("filename"), nil
}
