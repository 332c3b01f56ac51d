package repository

import (
	"context"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	FindByProductBranch(ctx context.Context, productID, branchID uuid.UUID) (*model.Inventory, error)
	// FindOrCreateTx returns the (product, branch) row inside tx, creating it
	// at quantity 0 when absent. The row is read FOR UPDATE so concurrent
	// read-modify-write cycles on the same row serialize instead of losing
	// updates.
	FindOrCreateTx(tx *gorm.DB, productID, branchID uuid.UUID) (*model.Inventory, error)
	UpdateTx(tx *gorm.DB, inv *model.Inventory) error
	Update(ctx context.Context, inv *model.Inventory) error
	List(ctx context.Context, filter dto.InventoryFilter) ([]model.Inventory, int64, error)
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

func (r *inventoryRepo) FindByProductBranch(ctx context.Context, productID, branchID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&inv).Error
	return &inv, err
}

func (r *inventoryRepo) FindOrCreateTx(tx *gorm.DB, productID, branchID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&inv).Error
	if err == gorm.ErrRecordNotFound {
		inv = model.Inventory{ProductID: productID, BranchID: branchID, Quantity: 0, ReorderLevel: 5}
		err = tx.Create(&inv).Error
	}
	return &inv, err
}

func (r *inventoryRepo) UpdateTx(tx *gorm.DB, inv *model.Inventory) error {
	return tx.Save(inv).Error
}

func (r *inventoryRepo) Update(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *inventoryRepo) List(ctx context.Context, filter dto.InventoryFilter) ([]model.Inventory, int64, error) {
	var rows []model.Inventory
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Inventory{})

	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.LowStock {
		q = q.Where("quantity <= reorder_level")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Product").Preload("Branch").
		Order("updated_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *inventoryRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *inventoryRepo) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var movs []model.StockMovement
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.StockMovement{})

	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Product").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error

	return movs, total, err
}
