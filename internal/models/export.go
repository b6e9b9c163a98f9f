package models

import "time"

// Export is an enriched CSV produced by the batch pipeline and kept for
// download for the lifetime of the process.
type Export struct {
	ID         string    `json:"id" db:"id"`
	FileName   string    `json:"file_name" db:"file_name"`
	RowCount   int       `json:"row_count" db:"row_count"`
	Strictness int       `json:"strictness" db:"strictness"`
	Status     string    `json:"status" db:"status"`
	Content    string    `json:"-" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// BatchResult is what the CSV pipeline returns for one table.
type BatchResult struct {
	CSV      string `json:"-"`
	RowCount int    `json:"row_count"`
	Status   string `json:"status"`
}
