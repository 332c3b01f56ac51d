package model

import (
	"time"

	"github.com/google/uuid"
)

// Report types and formats.
const (
	ReportSales     = "sales"
	ReportInventory = "inventory"
	ReportPurchase  = "purchase"

	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// Report statuses.
const (
	ReportQueued = "queued"
	ReportReady  = "ready"
	ReportError  = "error"
)

// Report is a generated export file. Generation runs on the worker pool;
// FilePath is set once the file has been written.
type Report struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title  string    `gorm:"not null"`
	Type   string    `gorm:"type:varchar(20);not null"`
	Format string    `gorm:"type:varchar(10);not null"`
	Status string    `gorm:"type:varchar(10);not null;default:'queued'"`
	// FilePath is relative to REPORT_STORAGE_PATH
	FilePath *string
	// Parameters stores the generation filters as JSON
	Parameters  *string    `gorm:"type:jsonb"`
	CreatedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
