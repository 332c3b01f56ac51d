package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type InventoryService interface {
	// AdjustStock applies a signed manual delta with an audit reason.
	// Deltas that would take the quantity below zero are rejected.
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.InventoryResponse, error)
	// AdjustStockTx changes one (product, branch) quantity inside tx, writes
	// the ledger entry, and reports whether the row crossed into low stock.
	// Callers notify AFTER their transaction commits.
	AdjustStockTx(ctx context.Context, tx *gorm.DB, productID, branchID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) (*model.Inventory, bool, error)
	SetReorderLevel(ctx context.Context, req dto.SetReorderLevelRequest) (*dto.InventoryResponse, error)
	GetStock(ctx context.Context, productID, branchID uuid.UUID) (*dto.InventoryResponse, error)
	ListInventory(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, int64, error)
}

type inventoryService struct {
	repo     repository.InventoryRepository
	notifier NotificationService
}

func NewInventoryService(repo repository.InventoryRepository, notifier NotificationService) InventoryService {
	return &inventoryService{repo: repo, notifier: notifier}
}

func (s *inventoryService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product_id")
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch_id")
	}

	var inv *model.Inventory
	var crossed bool
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		inv, crossed, err = s.AdjustStockTx(ctx, tx, productID, branchID, req.Delta, model.MovementManualAdjustment, req.Reason, nil)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if crossed && s.notifier != nil {
		if err := s.notifier.NotifyLowStock(ctx, inv); err != nil {
			// Notification failure never rolls back the adjustment
			_ = err
		}
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) AdjustStockTx(ctx context.Context, tx *gorm.DB, productID, branchID uuid.UUID, delta int, movType, reason string, refID *uuid.UUID) (*model.Inventory, bool, error) {
	inv, err := s.repo.FindOrCreateTx(tx, productID, branchID)
	if err != nil {
		return nil, false, err
	}

	before := inv.Quantity
	after := before + delta
	if after < 0 {
		if movType == model.MovementManualAdjustment {
			return nil, false, fmt.Errorf("%w: %d on hand, delta %d", ErrInsufficientStock, before, delta)
		}
		// Sales are pre-checked at the service boundary; clamp here so the
		// ledger never records a negative balance.
		after = 0
	}

	wasLow := before <= inv.ReorderLevel
	inv.Quantity = after
	if delta > 0 && movType == model.MovementPurchaseReceipt {
		now := time.Now()
		inv.LastRestockDate = &now
	}
	if err := s.repo.UpdateTx(tx, inv); err != nil {
		return nil, false, err
	}

	mov := &model.StockMovement{
		ProductID:      productID,
		BranchID:       branchID,
		Type:           movType,
		Quantity:       after - before,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         reason,
		ReferenceID:    refID,
	}
	if err := s.repo.CreateMovementTx(tx, mov); err != nil {
		return nil, false, err
	}

	crossed := !wasLow && inv.IsLowStock()
	return inv, crossed, nil
}

func (s *inventoryService) SetReorderLevel(ctx context.Context, req dto.SetReorderLevelRequest) (*dto.InventoryResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, errors.New("invalid product_id")
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch_id")
	}

	inv, err := s.repo.FindByProductBranch(ctx, productID, branchID)
	if err != nil {
		return nil, errors.New("inventory row not found")
	}

	wasLow := inv.IsLowStock()
	inv.ReorderLevel = req.ReorderLevel
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	// Raising the threshold can push an untouched quantity into low stock
	if !wasLow && inv.IsLowStock() && s.notifier != nil {
		_ = s.notifier.NotifyLowStock(ctx, inv)
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) GetStock(ctx context.Context, productID, branchID uuid.UUID) (*dto.InventoryResponse, error) {
	inv, err := s.repo.FindByProductBranch(ctx, productID, branchID)
	if err != nil {
		return nil, errors.New("inventory row not found")
	}
	return inventoryToResponse(inv), nil
}

func (s *inventoryService) ListInventory(ctx context.Context, filter dto.InventoryFilter) (*dto.InventoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(rows))
	for i := range rows {
		items = append(items, *inventoryToResponse(&rows[i]))
	}
	return &dto.InventoryListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movs, total, err := s.repo.ListMovements(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for i := range movs {
		m := &movs[i]
		item := dto.MovementResponse{
			ID:             m.ID.String(),
			ProductID:      m.ProductID.String(),
			BranchID:       m.BranchID.String(),
			Type:           m.Type,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		}
		if m.Product != nil {
			item.Product = m.Product.Name
		}
		if m.ReferenceID != nil {
			v := m.ReferenceID.String()
			item.ReferenceID = &v
		}
		items = append(items, item)
	}
	return items, total, nil
}

func inventoryToResponse(inv *model.Inventory) *dto.InventoryResponse {
	resp := &dto.InventoryResponse{
		ID:           inv.ID.String(),
		ProductID:    inv.ProductID.String(),
		BranchID:     inv.BranchID.String(),
		Quantity:     inv.Quantity,
		ReorderLevel: inv.ReorderLevel,
		LowStock:     inv.IsLowStock(),
	}
	if inv.Product != nil {
		resp.Product = inv.Product.Name
		resp.SKU = inv.Product.SKU
	}
	if inv.Branch != nil {
		resp.Branch = inv.Branch.Name
	}
	if inv.LastRestockDate != nil {
		v := inv.LastRestockDate.Format(time.RFC3339)
		resp.LastRestockDate = &v
	}
	return resp
}
