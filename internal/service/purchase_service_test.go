package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchaseFixture struct {
	svc      service.PurchaseService
	repo     *stubPurchaseRepo
	invRepo  *stubInventoryRepo
	products *stubProductRepo
	branch   *model.Branch
	supplier *model.Supplier
	notifier *stubNotifier
}

func newPurchaseFixture() *purchaseFixture {
	repo := newStubPurchaseRepo()
	supplierRepo := newStubSupplierRepo()
	branchRepo := newStubBranchRepo()
	productRepo := newStubProductRepo()
	invRepo := newStubInventoryRepo()
	notifier := &stubNotifier{}

	managerID := uuid.New()
	branch := branchRepo.seed(&managerID)
	supplier := supplierRepo.seed("Acme Distribution")

	inventorySvc := service.NewInventoryService(invRepo, notifier)
	svc := service.NewPurchaseService(repo, supplierRepo, branchRepo, productRepo, inventorySvc, notifier)

	return &purchaseFixture{
		svc:      svc,
		repo:     repo,
		invRepo:  invRepo,
		products: productRepo,
		branch:   branch,
		supplier: supplier,
		notifier: notifier,
	}
}

func TestCreatePurchase_TotalsAndReference(t *testing.T) {
	f := newPurchaseFixture()
	p1 := seedProduct(f.products, "Galaxy A16", 200)
	p2 := seedProduct(f.products, "USB-C Cable", 5)

	resp, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p1.ID.String(), Quantity: 5, UnitPrice: decimal.NewFromInt(20)},
			{ProductID: p2.ID.String(), Quantity: 10, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PO-000001", resp.ReferenceNumber)
	assert.Equal(t, model.PurchasePending, resp.Status)
	// 5×20 + 10×1 = 110
	assert.Equal(t, "110", resp.TotalAmount.String())
	assert.Len(t, resp.Items, 2)
}

func TestCreatePurchase_InactiveSupplierRejected(t *testing.T) {
	f := newPurchaseFixture()
	f.supplier.Active = false
	p := seedProduct(f.products, "Redmi 13C", 150)

	_, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorContains(t, err, "inactive")
}

func TestReceivePurchase_CreditsStockExactlyOnce(t *testing.T) {
	f := newPurchaseFixture()
	p := seedProduct(f.products, "iPhone 15 Case", 25)

	created, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 8, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	purchaseID := uuid.MustParse(created.ID)
	receiverID := uuid.New()

	resp, err := f.svc.ReceivePurchase(context.Background(), purchaseID, receiverID)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseReceived, resp.Status)

	inv, err := f.invRepo.FindByProductBranch(context.Background(), p.ID, f.branch.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, inv.Quantity)
	assert.NotNil(t, inv.LastRestockDate)

	require.Len(t, f.invRepo.movements, 1)
	m := f.invRepo.movements[0]
	assert.Equal(t, model.MovementPurchaseReceipt, m.Type)
	assert.Equal(t, 8, m.Quantity)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, purchaseID, *m.ReferenceID)

	// A second receive hits the status guard; stock stays credited once
	_, err = f.svc.ReceivePurchase(context.Background(), purchaseID, receiverID)
	assert.ErrorContains(t, err, "received")
	inv, _ = f.invRepo.FindByProductBranch(context.Background(), p.ID, f.branch.ID)
	assert.Equal(t, 8, inv.Quantity)
	assert.Len(t, f.invRepo.movements, 1)

	// The branch manager was alerted exactly once
	assert.Len(t, f.notifier.purchases, 1)
}

func TestReceivePurchase_ConcurrentReceiversCreditOnce(t *testing.T) {
	f := newPurchaseFixture()
	p := seedProduct(f.products, "Moto G54", 180)

	created, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 8, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	purchaseID := uuid.MustParse(created.ID)

	// Two receivers race; only the one that flips pending → received credits
	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.ReceivePurchase(context.Background(), purchaseID, uuid.New())
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	failures := 0
	for err := range errs {
		if err != nil {
			failures++
			assert.ErrorContains(t, err, "received")
		}
	}
	assert.Equal(t, 1, failures)

	inv, err := f.invRepo.FindByProductBranch(context.Background(), p.ID, f.branch.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, inv.Quantity)
	assert.Len(t, f.invRepo.movements, 1)
	assert.Len(t, f.notifier.purchases, 1)
}

func TestPurchaseItemEdits_PendingOnly(t *testing.T) {
	f := newPurchaseFixture()
	p1 := seedProduct(f.products, "Pixel 8a", 500)
	p2 := seedProduct(f.products, "Screen Protector", 8)

	created, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p1.ID.String(), Quantity: 2, UnitPrice: decimal.NewFromInt(400)},
		},
	})
	require.NoError(t, err)
	purchaseID := uuid.MustParse(created.ID)

	resp, err := f.svc.AddItem(context.Background(), purchaseID, dto.PurchaseItemRequest{
		ProductID: p2.ID.String(),
		Quantity:  20,
		UnitPrice: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	// 2×400 + 20×2 = 840
	assert.Equal(t, "840", resp.TotalAmount.String())

	_, err = f.svc.ReceivePurchase(context.Background(), purchaseID, uuid.New())
	require.NoError(t, err)

	_, err = f.svc.AddItem(context.Background(), purchaseID, dto.PurchaseItemRequest{
		ProductID: p2.ID.String(),
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(2),
	})
	assert.ErrorContains(t, err, "no longer be edited")
}

func TestCancelPurchase_ReceivedRejected(t *testing.T) {
	f := newPurchaseFixture()
	p := seedProduct(f.products, "Power Bank 10000mAh", 30)

	created, err := f.svc.CreatePurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		SupplierID: f.supplier.ID.String(),
		BranchID:   f.branch.ID.String(),
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 3, UnitPrice: decimal.NewFromInt(15)},
		},
	})
	require.NoError(t, err)
	purchaseID := uuid.MustParse(created.ID)

	_, err = f.svc.ReceivePurchase(context.Background(), purchaseID, uuid.New())
	require.NoError(t, err)

	err = f.svc.CancelPurchase(context.Background(), purchaseID)
	assert.ErrorContains(t, err, "cannot be canceled")
}
