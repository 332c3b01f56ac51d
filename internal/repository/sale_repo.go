package repository

import (
	"context"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	Update(ctx context.Context, s *model.Sale) error
	UpdateTx(tx *gorm.DB, s *model.Sale) error
	AddItem(ctx context.Context, item *model.SaleItem) error
	UpdateItem(ctx context.Context, item *model.SaleItem) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*model.SaleItem, error)
	// NextInvoiceSeq atomically allocates the next invoice suffix for the given
	// day (YYYYMMDD) via an upsert on the invoice_counters table. Concurrent
	// sales on the same day get strictly increasing values.
	NextInvoiceSeq(ctx context.Context, tx *gorm.DB, day string) (int, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items.Product").Preload("Customer").Preload("Staff").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) Update(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saleRepo) UpdateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Save(s).Error
}

func (r *saleRepo) AddItem(ctx context.Context, item *model.SaleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *saleRepo) UpdateItem(ctx context.Context, item *model.SaleItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *saleRepo) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SaleItem{}, itemID).Error
}

func (r *saleRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*model.SaleItem, error) {
	var item model.SaleItem
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	return &item, err
}

func (r *saleRepo) NextInvoiceSeq(ctx context.Context, tx *gorm.DB, day string) (int, error) {
	var seq int
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO invoice_counters (day, seq) VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET seq = invoice_counters.seq + 1
		RETURNING seq`, day).Scan(&seq).Error
	return seq, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BranchID != "" {
		q = q.Where("branch_id = ?", filter.BranchID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(sale_date) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(sale_date) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Product").Preload("Customer").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
