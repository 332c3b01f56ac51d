package dto

// CreateReportRequest queues a report generation job.
type CreateReportRequest struct {
	Title  string `json:"title"  validate:"required,min=3"`
	Type   string `json:"type"   validate:"required,oneof=sales inventory purchase"`
	Format string `json:"format" validate:"required,oneof=excel csv pdf"`
	// Filters
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to"   validate:"omitempty,datetime=2006-01-02"`
}

type ReportResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Format    string  `json:"format"`
	Status    string  `json:"status"`
	FilePath  *string `json:"file_path"`
	CreatedAt string  `json:"created_at"`
}
