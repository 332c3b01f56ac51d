package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	svc         service.SaleService
	repo        *stubSaleRepo
	sessionRepo *stubSessionRepo
	invRepo     *stubInventoryRepo
	products    *stubProductRepo
	customers   *stubCustomerRepo
	notifier    *stubNotifier
	session     *model.POSSession
	branchID    uuid.UUID
	staffID     uuid.UUID
}

func newSaleFixture() *saleFixture { return newSaleFixtureWithReceipts("") }

// receiptPath empty keeps PDF rendering off, as most tests want.
func newSaleFixtureWithReceipts(receiptPath string) *saleFixture {
	repo := newStubSaleRepo()
	sessionRepo := newStubSessionRepo()
	branchRepo := newStubBranchRepo()
	productRepo := newStubProductRepo()
	invRepo := newStubInventoryRepo()
	customerRepo := newStubCustomerRepo()
	notifier := &stubNotifier{}

	managerID := uuid.New()
	branch := branchRepo.seed(&managerID)
	staffID := uuid.New()
	session := sessionRepo.seedActive(staffID, branch.ID, 100)

	sessionSvc := service.NewSessionService(sessionRepo, branchRepo)
	inventorySvc := service.NewInventoryService(invRepo, notifier)
	svc := service.NewSaleService(repo, sessionSvc, customerRepo, productRepo, inventorySvc, notifier, "Test Store", receiptPath)

	return &saleFixture{
		svc:         svc,
		repo:        repo,
		sessionRepo: sessionRepo,
		invRepo:     invRepo,
		products:    productRepo,
		customers:   customerRepo,
		notifier:    notifier,
		session:     session,
		branchID:    branch.ID,
		staffID:     staffID,
	}
}

func (f *saleFixture) startSale(t *testing.T, method string) uuid.UUID {
	t.Helper()
	resp, err := f.svc.StartSale(context.Background(), f.staffID, dto.StartSaleRequest{
		SessionID:     f.session.ID.String(),
		PaymentMethod: method,
	})
	require.NoError(t, err)
	return uuid.MustParse(resp.ID)
}

func TestStartSale_RequiresActiveSession(t *testing.T) {
	f := newSaleFixture()
	f.session.Status = model.SessionClosed

	_, err := f.svc.StartSale(context.Background(), f.staffID, dto.StartSaleRequest{
		SessionID: f.session.ID.String(),
	})
	assert.ErrorContains(t, err, "session is closed")
}

func TestStartSale_DraftGetsPlaceholderInvoice(t *testing.T) {
	f := newSaleFixture()

	resp, err := f.svc.StartSale(context.Background(), f.staffID, dto.StartSaleRequest{
		SessionID: f.session.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaleDraft, resp.Status)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.Contains(t, resp.InvoiceNumber, "DRAFT-")
}

func TestAddSaleItem_InsufficientStock(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "Galaxy S24", 900)
	f.invRepo.seed(p.ID, f.branchID, 2, 1)
	saleID := f.startSale(t, "cash")

	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  3,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInsufficientStock))

	// No stock record at all is also a refusal
	other := seedProduct(f.products, "Unstocked Model", 100)
	_, err = f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: other.ID.String(),
		Quantity:  1,
	})
	assert.True(t, errors.Is(err, service.ErrInsufficientStock))
}

func TestSaleTotals_RecomputedOnItemChanges(t *testing.T) {
	f := newSaleFixture()
	p1 := seedProduct(f.products, "Charger 20W", 20)
	p2 := seedProduct(f.products, "Earbuds", 50)
	f.invRepo.seed(p1.ID, f.branchID, 50, 5)
	f.invRepo.seed(p2.ID, f.branchID, 50, 5)
	saleID := f.startSale(t, "cash")

	// 2×20 = 40
	resp, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p1.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, "40", resp.Subtotal.String())

	// + 1×50 − 5 discount = 85
	resp, err = f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p2.ID.String(),
		Quantity:  1,
		Discount:  decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "85", resp.Subtotal.String())
	assert.Equal(t, "85", resp.TotalAmount.String())

	// Header tax and discount fold into the grand total: 85 + 8.5 − 3 = 90.5
	tax := decimal.NewFromFloat(8.5)
	disc := decimal.NewFromInt(3)
	resp, err = f.svc.UpdateSale(context.Background(), saleID, dto.UpdateSaleRequest{
		TaxAmount:      &tax,
		DiscountAmount: &disc,
	})
	require.NoError(t, err)
	assert.Equal(t, "90.5", resp.TotalAmount.String())

	// Removing a line recomputes from scratch
	itemID := uuid.MustParse(resp.Items[0].ID)
	resp, err = f.svc.RemoveItem(context.Background(), saleID, itemID)
	require.NoError(t, err)
	assert.Equal(t, "45", resp.Subtotal.String())
}

func TestAddSaleItem_PriceOverride(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "Display Model Phone", 300)
	f.invRepo.seed(p.ID, f.branchID, 10, 2)
	saleID := f.startSale(t, "cash")

	override := decimal.NewFromInt(250)
	resp, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  1,
		UnitPrice: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, "250", resp.Items[0].UnitPrice.String())
	assert.Equal(t, "250", resp.Subtotal.String())
}

func TestCompleteSale_AssignsInvoiceAndDecrementsStock(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "Galaxy A16", 200)
	f.invRepo.seed(p.ID, f.branchID, 10, 3)
	saleID := f.startSale(t, "cash")

	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	resp, err := f.svc.CompleteSale(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleCompleted, resp.Status)
	assert.Equal(t, fmt.Sprintf("INV-%s-0001", time.Now().Format("20060102")), resp.InvoiceNumber)

	inv, _ := f.invRepo.FindByProductBranch(context.Background(), p.ID, f.branchID)
	assert.Equal(t, 8, inv.Quantity)

	// Cash sale rolls into the session's cash bucket and the drawer
	session := f.sessionRepo.sessions[f.session.ID]
	assert.Equal(t, "400", session.CashSales.String())
	assert.Equal(t, "500", session.CashInDrawer.String()) // 100 opening + 400
	assert.Equal(t, "400", session.TotalSales.String())
	assert.Equal(t, 1, session.TransactionCount)

	// Drafts can no longer be edited and cannot complete twice
	_, err = f.svc.CompleteSale(context.Background(), saleID)
	assert.ErrorContains(t, err, "completed")
}

func TestCompleteSale_SequentialInvoiceNumbers(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "USB-C Cable", 5)
	f.invRepo.seed(p.ID, f.branchID, 100, 5)

	day := time.Now().Format("20060102")
	for i := 1; i <= 3; i++ {
		saleID := f.startSale(t, "cash")
		_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
			ProductID: p.ID.String(),
			Quantity:  1,
		})
		require.NoError(t, err)
		resp, err := f.svc.CompleteSale(context.Background(), saleID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%s-%04d", day, i), resp.InvoiceNumber)
	}
}

func TestCompleteSale_EmptySaleRejected(t *testing.T) {
	f := newSaleFixture()
	saleID := f.startSale(t, "cash")

	_, err := f.svc.CompleteSale(context.Background(), saleID)
	assert.ErrorContains(t, err, "no items")
}

func TestCompleteSale_CardBucket(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "Pixel 8a", 500)
	f.invRepo.seed(p.ID, f.branchID, 5, 1)
	saleID := f.startSale(t, "credit_card")

	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	_, err = f.svc.CompleteSale(context.Background(), saleID)
	require.NoError(t, err)

	// Card sales never touch the cash drawer
	session := f.sessionRepo.sessions[f.session.ID]
	assert.Equal(t, "500", session.CardSales.String())
	assert.Equal(t, "0", session.CashSales.String())
	assert.Equal(t, "100", session.CashInDrawer.String())
}

func TestCompleteSale_LowStockCrossingNotifies(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "Redmi 13C", 150)
	f.invRepo.seed(p.ID, f.branchID, 6, 5)
	saleID := f.startSale(t, "cash")

	// 6 → 4 crosses the reorder level of 5
	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	_, err = f.svc.CompleteSale(context.Background(), saleID)
	require.NoError(t, err)

	require.Len(t, f.notifier.lowStock, 1)
	assert.Equal(t, 4, f.notifier.lowStock[0].Quantity)
}

func TestCancelSale_RestoresStockAndSessionTotals(t *testing.T) {
	f := newSaleFixture()
	p := seedProduct(f.products, "iPhone 15", 1200)
	f.invRepo.seed(p.ID, f.branchID, 4, 1)
	saleID := f.startSale(t, "cash")

	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	_, err = f.svc.CompleteSale(context.Background(), saleID)
	require.NoError(t, err)

	resp, err := f.svc.CancelSale(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleCanceled, resp.Status)

	// Stock restored via an inverse ledger entry, never by editing history
	inv, _ := f.invRepo.FindByProductBranch(context.Background(), p.ID, f.branchID)
	assert.Equal(t, 4, inv.Quantity)
	var cancelEntries int
	for _, m := range f.invRepo.movements {
		if m.Type == model.MovementSaleCancel {
			cancelEntries++
			assert.Equal(t, 2, m.Quantity)
		}
	}
	assert.Equal(t, 1, cancelEntries)

	// Session totals backed out
	session := f.sessionRepo.sessions[f.session.ID]
	assert.Equal(t, "0", session.CashSales.String())
	assert.Equal(t, "100", session.CashInDrawer.String())
	assert.Equal(t, 0, session.TransactionCount)

	// A draft cannot be canceled, only a completed sale
	draftID := f.startSale(t, "cash")
	_, err = f.svc.CancelSale(context.Background(), draftID)
	assert.ErrorContains(t, err, "cannot be canceled")
}

func TestReceiptPath_CompletedSaleGetsAFile(t *testing.T) {
	dir := t.TempDir()
	f := newSaleFixtureWithReceipts(dir)
	p := seedProduct(f.products, "Galaxy A16", 200)
	f.invRepo.seed(p.ID, f.branchID, 10, 2)

	saleID := f.startSale(t, "cash")
	_, err := f.svc.AddItem(context.Background(), saleID, dto.SaleItemRequest{
		ProductID: p.ID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)
	completed, err := f.svc.CompleteSale(context.Background(), saleID)
	require.NoError(t, err)

	path, err := f.svc.ReceiptPath(context.Background(), saleID)
	require.NoError(t, err)
	assert.Equal(t, "receipt_"+completed.InvoiceNumber+".pdf", filepath.Base(path))
	_, err = os.Stat(path)
	require.NoError(t, err)

	// A missing file is rendered again on demand
	require.NoError(t, os.Remove(path))
	path, err = f.svc.ReceiptPath(context.Background(), saleID)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReceiptPath_DraftSaleRejected(t *testing.T) {
	f := newSaleFixtureWithReceipts(t.TempDir())
	saleID := f.startSale(t, "cash")

	_, err := f.svc.ReceiptPath(context.Background(), saleID)
	assert.ErrorContains(t, err, "completed")
}

func TestReceiptPath_StorageNotConfigured(t *testing.T) {
	f := newSaleFixture()
	saleID := f.startSale(t, "cash")

	_, err := f.svc.ReceiptPath(context.Background(), saleID)
	assert.ErrorContains(t, err, "not configured")
}
