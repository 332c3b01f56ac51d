package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/infra"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

type SaleService interface {
	// StartSale opens a draft sale against an active POS session.
	StartSale(ctx context.Context, staffID uuid.UUID, req dto.StartSaleRequest) (*dto.SaleResponse, error)
	AddItem(ctx context.Context, saleID uuid.UUID, req dto.SaleItemRequest) (*dto.SaleResponse, error)
	UpdateItem(ctx context.Context, saleID, itemID uuid.UUID, req dto.UpdateSaleItemRequest) (*dto.SaleResponse, error)
	RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*dto.SaleResponse, error)
	UpdateSale(ctx context.Context, saleID uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error)
	// CompleteSale assigns the invoice number, decrements stock and rolls the
	// totals into the session, all in one transaction.
	CompleteSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error)
	// CancelSale reverses a completed sale: stock is restored and the session
	// totals are backed out.
	CancelSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	// ReceiptPath returns the PDF receipt for a completed sale, rendering it
	// first when the completion-time generation did not run.
	ReceiptPath(ctx context.Context, saleID uuid.UUID) (string, error)
}

type saleService struct {
	repo      repository.SaleRepository
	sessions  SessionService
	customers repository.CustomerRepository
	products  repository.ProductRepository
	inventory InventoryService
	notifier  NotificationService
	storeName string
	// receiptPath empty disables receipt PDF generation
	receiptPath string
}

func NewSaleService(
	repo repository.SaleRepository,
	sessions SessionService,
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	inventory InventoryService,
	notifier NotificationService,
	storeName, receiptPath string,
) SaleService {
	return &saleService{
		repo:        repo,
		sessions:    sessions,
		customers:   customers,
		products:    products,
		inventory:   inventory,
		notifier:    notifier,
		storeName:   storeName,
		receiptPath: receiptPath,
	}
}

// ── Draft lifecycle ───────────────────────────────────────────────────────────

func (s *saleService) StartSale(ctx context.Context, staffID uuid.UUID, req dto.StartSaleRequest) (*dto.SaleResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.sessions.GetActiveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, errors.New("invalid customer_id")
		}
		if _, err := s.customers.FindByID(ctx, id); err != nil {
			return nil, errors.New("customer not found")
		}
		customerID = &id
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = model.PaymentCash
	}

	// The real invoice number is allocated at completion. Drafts get a unique
	// placeholder so abandoned carts never consume a sequence slot.
	sale := model.Sale{
		InvoiceNumber: "DRAFT-" + strings.ToUpper(uuid.NewString()[:8]),
		SaleDate:      time.Now(),
		SessionID:     session.ID,
		BranchID:      session.BranchID,
		StaffID:       &staffID,
		CustomerID:    customerID,
		PaymentMethod: method,
		Status:        model.SaleDraft,
		Notes:         req.Notes,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &sale)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSale(ctx, sale.ID)
}

func (s *saleService) AddItem(ctx context.Context, saleID uuid.UUID, req dto.SaleItemRequest) (*dto.SaleResponse, error) {
	sale, err := s.draft(ctx, saleID)
	if err != nil {
		return nil, err
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product_id")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if !product.Active {
		return nil, errors.New("product is inactive")
	}
	if err := s.checkStock(ctx, productID, sale.BranchID, req.Quantity); err != nil {
		return nil, err
	}

	unitPrice := product.SellingPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	item := &model.SaleItem{
		SaleID:    saleID,
		ProductID: productID,
		Quantity:  req.Quantity,
		UnitPrice: unitPrice,
		Discount:  req.Discount,
	}
	item.TotalPrice = item.LineTotal()
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.recomputeTotals(ctx, saleID)
}

func (s *saleService) UpdateItem(ctx context.Context, saleID, itemID uuid.UUID, req dto.UpdateSaleItemRequest) (*dto.SaleResponse, error) {
	sale, err := s.draft(ctx, saleID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil || item.SaleID != saleID {
		return nil, errors.New("item not found on this sale")
	}
	if req.Quantity > item.Quantity {
		if err := s.checkStock(ctx, item.ProductID, sale.BranchID, req.Quantity); err != nil {
			return nil, err
		}
	}
	item.Quantity = req.Quantity
	item.Discount = req.Discount
	item.TotalPrice = item.LineTotal()
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return s.recomputeTotals(ctx, saleID)
}

func (s *saleService) RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*dto.SaleResponse, error) {
	if _, err := s.draft(ctx, saleID); err != nil {
		return nil, err
	}
	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil || item.SaleID != saleID {
		return nil, errors.New("item not found on this sale")
	}
	if err := s.repo.RemoveItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.recomputeTotals(ctx, saleID)
}

func (s *saleService) UpdateSale(ctx context.Context, saleID uuid.UUID, req dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := s.draft(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != nil {
		if *req.CustomerID == "" {
			sale.CustomerID = nil
		} else {
			id, err := uuid.Parse(*req.CustomerID)
			if err != nil {
				return nil, errors.New("invalid customer_id")
			}
			if _, err := s.customers.FindByID(ctx, id); err != nil {
				return nil, errors.New("customer not found")
			}
			sale.CustomerID = &id
		}
	}
	if req.PaymentMethod != "" {
		sale.PaymentMethod = model.PaymentMethod(req.PaymentMethod)
	}
	if req.TaxAmount != nil {
		if req.TaxAmount.IsNegative() {
			return nil, errors.New("tax_amount cannot be negative")
		}
		sale.TaxAmount = *req.TaxAmount
	}
	if req.DiscountAmount != nil {
		if req.DiscountAmount.IsNegative() {
			return nil, errors.New("discount_amount cannot be negative")
		}
		sale.DiscountAmount = *req.DiscountAmount
	}
	if req.Notes != nil {
		sale.Notes = req.Notes
	}
	sale.TotalAmount = sale.Subtotal.Add(sale.TaxAmount).Sub(sale.DiscountAmount)
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return s.GetSale(ctx, saleID)
}

// ── Completion / cancellation ─────────────────────────────────────────────────

func (s *saleService) CompleteSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.draft(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if len(sale.Items) == 0 {
		return nil, errors.New("cannot complete a sale with no items")
	}
	for _, item := range sale.Items {
		if err := s.checkStock(ctx, item.ProductID, sale.BranchID, item.Quantity); err != nil {
			return nil, err
		}
	}

	var crossed []*model.Inventory
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		now := time.Now()
		day := now.Format("20060102")
		seq, err := s.repo.NextInvoiceSeq(ctx, tx, day)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = fmt.Sprintf("INV-%s-%04d", day, seq)
		sale.SaleDate = now
		sale.Status = model.SaleCompleted

		for _, item := range sale.Items {
			ref := sale.ID
			inv, low, err := s.inventory.AdjustStockTx(ctx, tx, item.ProductID, sale.BranchID,
				-item.Quantity, model.MovementSale,
				fmt.Sprintf("Sale %s", sale.InvoiceNumber), &ref)
			if err != nil {
				return err
			}
			if low {
				crossed = append(crossed, inv)
			}
		}

		if err := s.sessions.ApplySaleTotalsTx(ctx, tx, sale.SessionID, sale.TotalAmount, sale.PaymentMethod.Bucket(), false); err != nil {
			return err
		}
		return s.repo.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}

	for _, inv := range crossed {
		if s.notifier != nil {
			_ = s.notifier.NotifyLowStock(ctx, inv)
		}
	}
	s.generateReceipt(ctx, saleID)
	return s.GetSale(ctx, saleID)
}

func (s *saleService) CancelSale(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	if sale.Status != model.SaleCompleted {
		return nil, fmt.Errorf("sale is %s and cannot be canceled", sale.Status)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			ref := sale.ID
			_, _, err := s.inventory.AdjustStockTx(ctx, tx, item.ProductID, sale.BranchID,
				item.Quantity, model.MovementSaleCancel,
				fmt.Sprintf("Cancellation of %s", sale.InvoiceNumber), &ref)
			if err != nil {
				return err
			}
		}
		if err := s.sessions.ApplySaleTotalsTx(ctx, tx, sale.SessionID, sale.TotalAmount, sale.PaymentMethod.Bucket(), true); err != nil {
			return err
		}
		sale.Status = model.SaleCanceled
		return s.repo.UpdateTx(tx, sale)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetSale(ctx, saleID)
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *saleService) draft(ctx context.Context, saleID uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, errors.New("sale not found")
	}
	if sale.Status != model.SaleDraft {
		return nil, fmt.Errorf("sale is %s and can no longer be edited", sale.Status)
	}
	return sale, nil
}

// checkStock is a pre-flight read. The ledger inside the transaction still
// clamps at zero, so a race between two sales cannot drive stock negative.
func (s *saleService) checkStock(ctx context.Context, productID, branchID uuid.UUID, qty int) error {
	stock, err := s.inventory.GetStock(ctx, productID, branchID)
	if err != nil {
		return fmt.Errorf("%w: no stock record for product at this branch", ErrInsufficientStock)
	}
	if stock.Quantity < qty {
		return fmt.Errorf("%w: %d available, %d requested", ErrInsufficientStock, stock.Quantity, qty)
	}
	return nil
}

func (s *saleService) recomputeTotals(ctx context.Context, saleID uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	subtotal := decimal.Zero
	for i := range sale.Items {
		subtotal = subtotal.Add(sale.Items[i].TotalPrice)
	}
	sale.Subtotal = subtotal
	sale.TotalAmount = subtotal.Add(sale.TaxAmount).Sub(sale.DiscountAmount)
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ReceiptPath(ctx context.Context, saleID uuid.UUID) (string, error) {
	if s.receiptPath == "" {
		return "", errors.New("receipt storage is not configured")
	}
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return "", errors.New("sale not found")
	}
	if sale.Status != model.SaleCompleted {
		return "", fmt.Errorf("sale is %s; receipts exist only for completed sales", sale.Status)
	}
	path := filepath.Join(s.receiptPath, fmt.Sprintf("receipt_%s.pdf", sale.InvoiceNumber))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return infra.GenerateReceiptPDF(sale, s.storeName, s.receiptPath)
}

func (s *saleService) generateReceipt(ctx context.Context, saleID uuid.UUID) {
	if s.receiptPath == "" {
		return
	}
	sale, err := s.repo.FindByID(ctx, saleID)
	if err != nil {
		return
	}
	if _, err := infra.GenerateReceiptPDF(sale, s.storeName, s.receiptPath); err != nil {
		log.Warn().Err(err).Str("invoice", sale.InvoiceNumber).Msg("receipt generation failed")
	}
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.SaleItemResponse{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Product:    name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   item.Discount,
			TotalPrice: item.TotalPrice,
		})
	}
	resp := &dto.SaleResponse{
		ID:             sale.ID.String(),
		InvoiceNumber:  sale.InvoiceNumber,
		SessionID:      sale.SessionID.String(),
		BranchID:       sale.BranchID.String(),
		PaymentMethod:  string(sale.PaymentMethod),
		Subtotal:       sale.Subtotal,
		TaxAmount:      sale.TaxAmount,
		DiscountAmount: sale.DiscountAmount,
		TotalAmount:    sale.TotalAmount,
		Status:         sale.Status,
		Items:          items,
		SaleDate:       sale.SaleDate.Format("2006-01-02T15:04:05Z"),
	}
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		resp.CustomerID = &id
	}
	if sale.Customer != nil {
		resp.Customer = sale.Customer.Name
	}
	if sale.StaffID != nil {
		id := sale.StaffID.String()
		resp.StaffID = &id
	}
	return resp
}
