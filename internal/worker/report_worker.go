package worker

// report_worker.go
// Processes report generation jobs from QueueReports. Queries the requested
// dataset, renders it in the requested format (xlsx / csv / pdf), writes the
// file under the report storage path, and flips the report row to ready (or
// error with the failure reason in the title-level log).

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/infra"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReportJobPayload is the job envelope sent to QueueReports.
type ReportJobPayload struct {
	ReportID string `json:"report_id"`
}

// ReportParams are the generation filters stored on the report row.
type ReportParams struct {
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"`   // YYYY-MM-DD
	BranchID  string `json:"branch_id,omitempty"`
}

// ReportWorker generates export files on the worker pool.
type ReportWorker struct {
	reportRepo  repository.ReportRepository
	db          *gorm.DB
	storagePath string
}

func NewReportWorker(reportRepo repository.ReportRepository, db *gorm.DB, storagePath string) *ReportWorker {
	return &ReportWorker{reportRepo: reportRepo, db: db, storagePath: storagePath}
}

// Process generates a single report file.
func (w *ReportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("report_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.ReportID)
	if err != nil {
		log.Error().Str("report_id", payload.ReportID).Msg("report_worker: invalid id")
		return
	}

	rep, err := w.reportRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("report_id", payload.ReportID).Msg("report_worker: not found")
		return
	}
	if rep.Status != model.ReportQueued {
		log.Debug().Str("report_id", payload.ReportID).Str("status", rep.Status).
			Msg("report_worker: already processed — skipping")
		return
	}

	var params ReportParams
	if rep.Parameters != nil {
		if err := json.Unmarshal([]byte(*rep.Parameters), &params); err != nil {
			log.Warn().Err(err).Str("report_id", payload.ReportID).Msg("report_worker: bad parameters JSON, ignoring filters")
		}
	}

	headers, rows, genErr := w.buildDataset(ctx, rep.Type, params)
	if genErr == nil {
		fileName := fmt.Sprintf("%s_%s%s", rep.Type, rep.ID.String()[:8], extensionFor(rep.Format))
		fullPath := filepath.Join(w.storagePath, fileName)

		switch rep.Format {
		case model.FormatExcel:
			genErr = infra.WriteExcel(fullPath, rep.Title, headers, rows)
		case model.FormatCSV:
			genErr = infra.WriteCSV(fullPath, headers, rows)
		case model.FormatPDF:
			genErr = infra.WriteTablePDF(fullPath, rep.Title, headers, rows)
		default:
			genErr = fmt.Errorf("unsupported format %q", rep.Format)
		}

		if genErr == nil {
			rep.FilePath = &fileName
		}
	}

	if genErr != nil {
		log.Error().Err(genErr).Str("report_id", payload.ReportID).Msg("report_worker: generation failed")
		rep.Status = model.ReportError
	} else {
		rep.Status = model.ReportReady
		log.Info().Str("report_id", payload.ReportID).Str("file", *rep.FilePath).
			Int("rows", len(rows)).Msg("report_worker: report ready")
	}

	if err := w.reportRepo.Update(ctx, rep); err != nil {
		log.Error().Err(err).Str("report_id", payload.ReportID).Msg("report_worker: failed to update report row")
	}
}

func extensionFor(format string) string {
	switch format {
	case model.FormatExcel:
		return ".xlsx"
	case model.FormatCSV:
		return ".csv"
	default:
		return ".pdf"
	}
}

func (w *ReportWorker) buildDataset(ctx context.Context, reportType string, params ReportParams) ([]string, [][]string, error) {
	switch reportType {
	case model.ReportSales:
		return w.salesDataset(ctx, params)
	case model.ReportInventory:
		return w.inventoryDataset(ctx, params)
	case model.ReportPurchase:
		return w.purchaseDataset(ctx, params)
	default:
		return nil, nil, fmt.Errorf("unsupported report type %q", reportType)
	}
}

func (w *ReportWorker) salesDataset(ctx context.Context, params ReportParams) ([]string, [][]string, error) {
	q := w.db.WithContext(ctx).Model(&model.Sale{}).
		Where("status = ?", model.SaleCompleted).
		Preload("Branch").Preload("Staff")
	q = applyRangeFilters(q, "sale_date", params)

	var sales []model.Sale
	if err := q.Order("sale_date ASC").Find(&sales).Error; err != nil {
		return nil, nil, err
	}

	headers := []string{"Invoice", "Date", "Branch", "Staff", "Payment", "Subtotal", "Tax", "Discount", "Total"}
	rows := make([][]string, 0, len(sales))
	for i := range sales {
		s := &sales[i]
		branch, staff := "", ""
		if s.Branch != nil {
			branch = s.Branch.Name
		}
		if s.Staff != nil {
			staff = s.Staff.FullName
		}
		rows = append(rows, []string{
			s.InvoiceNumber,
			s.SaleDate.Format("2006-01-02 15:04"),
			branch,
			staff,
			string(s.PaymentMethod),
			s.Subtotal.StringFixed(2),
			s.TaxAmount.StringFixed(2),
			s.DiscountAmount.StringFixed(2),
			s.TotalAmount.StringFixed(2),
		})
	}
	return headers, rows, nil
}

func (w *ReportWorker) inventoryDataset(ctx context.Context, params ReportParams) ([]string, [][]string, error) {
	q := w.db.WithContext(ctx).Model(&model.Inventory{}).
		Preload("Product").Preload("Branch")
	if params.BranchID != "" {
		q = q.Where("branch_id = ?", params.BranchID)
	}

	var rowsIn []model.Inventory
	if err := q.Find(&rowsIn).Error; err != nil {
		return nil, nil, err
	}

	headers := []string{"SKU", "Product", "Branch", "Quantity", "Reorder Level", "Low Stock"}
	rows := make([][]string, 0, len(rowsIn))
	for i := range rowsIn {
		inv := &rowsIn[i]
		sku, product, branch := "", "", ""
		if inv.Product != nil {
			sku, product = inv.Product.SKU, inv.Product.Name
		}
		if inv.Branch != nil {
			branch = inv.Branch.Name
		}
		low := "no"
		if inv.IsLowStock() {
			low = "yes"
		}
		rows = append(rows, []string{
			sku, product, branch,
			strconv.Itoa(inv.Quantity),
			strconv.Itoa(inv.ReorderLevel),
			low,
		})
	}
	return headers, rows, nil
}

func (w *ReportWorker) purchaseDataset(ctx context.Context, params ReportParams) ([]string, [][]string, error) {
	q := w.db.WithContext(ctx).Model(&model.Purchase{}).
		Preload("Supplier").Preload("Branch")
	q = applyRangeFilters(q, "purchase_date", params)

	var purchases []model.Purchase
	if err := q.Order("purchase_date ASC").Find(&purchases).Error; err != nil {
		return nil, nil, err
	}

	headers := []string{"Reference", "Date", "Supplier", "Branch", "Status", "Total"}
	rows := make([][]string, 0, len(purchases))
	for i := range purchases {
		p := &purchases[i]
		supplier, branch := "", ""
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		if p.Branch != nil {
			branch = p.Branch.Name
		}
		rows = append(rows, []string{
			p.ReferenceNumber,
			p.PurchaseDate.Format("2006-01-02"),
			supplier,
			branch,
			p.Status,
			p.TotalAmount.StringFixed(2),
		})
	}
	return headers, rows, nil
}

func applyRangeFilters(q *gorm.DB, dateColumn string, params ReportParams) *gorm.DB {
	if params.StartDate != "" {
		q = q.Where("DATE("+dateColumn+") >= ?", params.StartDate)
	}
	if params.EndDate != "" {
		q = q.Where("DATE("+dateColumn+") <= ?", params.EndDate)
	}
	if params.BranchID != "" {
		q = q.Where("branch_id = ?", params.BranchID)
	}
	return q
}
