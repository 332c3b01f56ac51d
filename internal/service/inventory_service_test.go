package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// lockingInventoryRepo emulates the FOR UPDATE read the real repository takes
// in FindOrCreateTx: the row stays locked until the movement write that ends
// the adjustment, so concurrent read-modify-write cycles serialize.
type lockingInventoryRepo struct {
	*stubInventoryRepo
	row sync.Mutex
}

func (r *lockingInventoryRepo) FindOrCreateTx(tx *gorm.DB, productID, branchID uuid.UUID) (*model.Inventory, error) {
	r.row.Lock()
	inv, err := r.stubInventoryRepo.FindOrCreateTx(tx, productID, branchID)
	if err != nil {
		r.row.Unlock()
		return nil, err
	}
	cp := *inv
	return &cp, nil
}

func (r *lockingInventoryRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	defer r.row.Unlock()
	return r.stubInventoryRepo.CreateMovementTx(tx, m)
}

func TestAdjustStock_RejectsNegativeResult(t *testing.T) {
	repo := newStubInventoryRepo()
	notifier := &stubNotifier{}
	svc := service.NewInventoryService(repo, notifier)

	productID := uuid.New()
	branchID := uuid.New()
	repo.seed(productID, branchID, 3, 5)

	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: productID.String(),
		BranchID:  branchID.String(),
		Delta:     -10,
		Reason:    "shrinkage count",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInsufficientStock))

	// Quantity untouched, no ledger entry written
	inv, _ := repo.FindByProductBranch(context.Background(), productID, branchID)
	assert.Equal(t, 3, inv.Quantity)
	assert.Empty(t, repo.movements)
}

func TestAdjustStock_WritesLedgerEntry(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := service.NewInventoryService(repo, &stubNotifier{})

	productID := uuid.New()
	branchID := uuid.New()
	repo.seed(productID, branchID, 10, 2)

	resp, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: productID.String(),
		BranchID:  branchID.String(),
		Delta:     -4,
		Reason:    "damaged units",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Quantity)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, model.MovementManualAdjustment, m.Type)
	assert.Equal(t, -4, m.Quantity)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 6, m.QuantityAfter)
	assert.Equal(t, "damaged units", m.Reason)
}

func TestAdjustStock_NotifiesOnLowStockCrossing(t *testing.T) {
	repo := newStubInventoryRepo()
	notifier := &stubNotifier{}
	svc := service.NewInventoryService(repo, notifier)

	productID := uuid.New()
	branchID := uuid.New()
	repo.seed(productID, branchID, 8, 5)

	// 8 → 5 crosses the reorder level: exactly one alert
	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: productID.String(),
		BranchID:  branchID.String(),
		Delta:     -3,
		Reason:    "stock count correction",
	})
	require.NoError(t, err)
	require.Len(t, notifier.lowStock, 1)
	assert.Equal(t, 5, notifier.lowStock[0].Quantity)

	// Already low: a further decrement must not re-alert
	_, err = svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: productID.String(),
		BranchID:  branchID.String(),
		Delta:     -1,
		Reason:    "stock count correction",
	})
	require.NoError(t, err)
	assert.Len(t, notifier.lowStock, 1)
}

func TestAdjustStock_CreatesRowWhenAbsent(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := service.NewInventoryService(repo, &stubNotifier{})

	productID := uuid.New()
	branchID := uuid.New()

	resp, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID: productID.String(),
		BranchID:  branchID.String(),
		Delta:     12,
		Reason:    "initial stock load",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Quantity)
	assert.Equal(t, 5, resp.ReorderLevel)
}

func TestSetReorderLevel_RaisingThresholdNotifies(t *testing.T) {
	repo := newStubInventoryRepo()
	notifier := &stubNotifier{}
	svc := service.NewInventoryService(repo, notifier)

	productID := uuid.New()
	branchID := uuid.New()
	repo.seed(productID, branchID, 7, 3)

	// 7 on hand, threshold raised to 10: the row is now low without any
	// stock change
	resp, err := svc.SetReorderLevel(context.Background(), dto.SetReorderLevelRequest{
		ProductID:    productID.String(),
		BranchID:     branchID.String(),
		ReorderLevel: 10,
	})
	require.NoError(t, err)
	assert.True(t, resp.LowStock)
	assert.Len(t, notifier.lowStock, 1)
}

func TestAdjustStock_ConcurrentAdjustmentsSerialize(t *testing.T) {
	base := newStubInventoryRepo()
	repo := &lockingInventoryRepo{stubInventoryRepo: base}
	notifier := &stubNotifier{}
	svc := service.NewInventoryService(repo, notifier)

	productID := uuid.New()
	branchID := uuid.New()
	base.seed(productID, branchID, 10, 2)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
				ProductID: productID.String(),
				BranchID:  branchID.String(),
				Delta:     -4,
				Reason:    "shrinkage count",
			})
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	// Neither decrement is lost: 10 − 4 − 4 = 2
	inv, err := base.FindByProductBranch(context.Background(), productID, branchID)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Quantity)

	require.Len(t, base.movements, 2)
	assert.Equal(t, 10, base.movements[0].QuantityBefore)
	assert.Equal(t, 6, base.movements[0].QuantityAfter)
	assert.Equal(t, 6, base.movements[1].QuantityBefore)
	assert.Equal(t, 2, base.movements[1].QuantityAfter)

	// Only the adjustment that crossed the threshold alerted
	assert.Len(t, notifier.lowStock, 1)
}
