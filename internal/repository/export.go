package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"comment-screener/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrExportNotFound is returned when no export has the requested id.
var ErrExportNotFound = errors.New("export not found")

type ExportRepository interface {
	SaveExport(exp *models.Export) error
	GetExport(id string) (*models.Export, error)
	ListExports() ([]*models.Export, error)
	PruneExports(keep int) (int64, error)
}

type exportRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewExportRepository(db *sqlx.DB, logger *zap.Logger) ExportRepository {
	return &exportRepository{db: db, logger: logger}
}

func (r *exportRepository) SaveExport(exp *models.Export) error {
	query := `INSERT INTO exports (id, file_name, row_count, strictness, status, content, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, exp.ID, exp.FileName, exp.RowCount, exp.Strictness, exp.Status, exp.Content, exp.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	return nil
}

func (r *exportRepository) GetExport(id string) (*models.Export, error) {
	var exp models.Export
	query := `SELECT id, file_name, row_count, strictness, status, content, created_at FROM exports WHERE id = ?`
	err := r.db.Get(&exp, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return &exp, nil
}

// ListExports returns export metadata, newest first, without content.
func (r *exportRepository) ListExports() ([]*models.Export, error) {
	exports := []*models.Export{}
	query := `SELECT id, file_name, row_count, strictness, status, created_at FROM exports ORDER BY seq DESC`
	if err := r.db.Select(&exports, query); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return exports, nil
}

// PruneExports deletes all but the newest keep exports.
func (r *exportRepository) PruneExports(keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM exports WHERE seq NOT IN (SELECT seq FROM exports ORDER BY seq DESC LIMIT ?)`
	res, err := r.db.Exec(query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune exports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned exports: %w", err)
	}
	if n > 0 {
		r.logger.Debug("Pruned old exports", zap.Int64("count", n))
	}
	return n, nil
}
