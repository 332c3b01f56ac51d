package repository

import (
	"context"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	Update(ctx context.Context, p *model.Purchase) error
	UpdateTx(tx *gorm.DB, p *model.Purchase) error
	// ClaimReceivedTx flips a pending purchase to received and stamps the
	// receiver in one guarded UPDATE. The status predicate means exactly one
	// caller claims the purchase; everyone else gets claimed == false.
	ClaimReceivedTx(tx *gorm.DB, id, userID uuid.UUID) (bool, error)
	AddItem(ctx context.Context, item *model.PurchaseItem) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	// NextReferenceSeq allocates the next PO number from a DB sequence —
	// atomic, so concurrent purchase creations never collide.
	NextReferenceSeq(ctx context.Context, tx *gorm.DB) (int64, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Supplier").Preload("Branch").
		First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) Update(ctx context.Context, p *model.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *purchaseRepo) UpdateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Save(p).Error
}

func (r *purchaseRepo) ClaimReceivedTx(tx *gorm.DB, id, userID uuid.UUID) (bool, error) {
	res := tx.Model(&model.Purchase{}).
		Where("id = ? AND status = ?", id, model.PurchasePending).
		Updates(map[string]any{"status": model.PurchaseReceived, "received_by_id": userID})
	return res.RowsAffected == 1, res.Error
}

func (r *purchaseRepo) AddItem(ctx context.Context, item *model.PurchaseItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *purchaseRepo) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PurchaseItem{}, itemID).Error
}

func (r *purchaseRepo) NextReferenceSeq(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('purchases_reference_seq')").Scan(&num).Error
	return num, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Purchase{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Product").Preload("Supplier").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&purchases).Error

	return purchases, total, err
}
