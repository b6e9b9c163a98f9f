package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"comment-screener/internal/csvbatch"
	"comment-screener/internal/models"
	"comment-screener/internal/repository"
	"comment-screener/internal/threshold"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultExportName is used when the upload has no usable file name.
const DefaultExportName = "classified-comments.csv"

// BatchService runs the CSV pipeline and keeps successful exports for download.
type BatchService struct {
	pipeline    *csvbatch.Pipeline
	repo        repository.ExportRepository
	maxRetained int
	logger      *zap.Logger
}

// NewBatchService creates a batch service retaining at most maxRetained exports.
func NewBatchService(pipeline *csvbatch.Pipeline, repo repository.ExportRepository, maxRetained int, logger *zap.Logger) *BatchService {
	return &BatchService{
		pipeline:    pipeline,
		repo:        repo,
		maxRetained: maxRetained,
		logger:      logger,
	}
}

// Process enriches raw CSV and stores it as a new export. A failed batch
// stores nothing, so earlier exports stay available unchanged.
func (s *BatchService) Process(raw, fileName string, strictness threshold.Strictness) (*models.Export, error) {
	res, err := s.pipeline.Process(raw, strictness)
	if err != nil {
		s.logger.Warn("CSV batch rejected", zap.String("file_name", fileName), zap.Error(err))
		return nil, err
	}

	exp := &models.Export{
		ID:         uuid.New().String(),
		FileName:   ExportFileName(fileName),
		RowCount:   res.RowCount,
		Strictness: int(strictness),
		Status:     res.Status,
		Content:    res.CSV,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.SaveExport(exp); err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	if s.maxRetained > 0 {
		if _, err := s.repo.PruneExports(s.maxRetained); err != nil {
			s.logger.Error("Failed to prune exports", zap.Error(err))
		}
	}

	s.logger.Info("CSV batch processed",
		zap.String("export_id", exp.ID),
		zap.String("file_name", exp.FileName),
		zap.Int("rows", exp.RowCount),
		zap.Int("strictness", exp.Strictness))

	return exp, nil
}

// GetExport returns a stored export including its content.
func (s *BatchService) GetExport(id string) (*models.Export, error) {
	return s.repo.GetExport(id)
}

// ListExports returns stored export metadata, newest first.
func (s *BatchService) ListExports() ([]*models.Export, error) {
	return s.repo.ListExports()
}

// ExportFileName derives the download name from the uploaded file name.
func ExportFileName(uploaded string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(uploaded), `\`, "/"))
	if base == "" || base == "." || base == "/" {
		return DefaultExportName
	}
	return "moderated-" + base
}
