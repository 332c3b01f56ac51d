package repository

import (
	"context"
	"errors"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	AddItem(ctx context.Context, item *model.CartItem) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*model.CartItem, error)
	FindBySessionProduct(ctx context.Context, sessionID, productID uuid.UUID) (*model.CartItem, error)
	UpdateItem(ctx context.Context, item *model.CartItem) error
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.CartItem, error)
	ClearSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
	DB() *gorm.DB
}

type cartRepo struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) CartRepository { return &cartRepo{db: db} }

func (r *cartRepo) DB() *gorm.DB { return r.db }

func (r *cartRepo) AddItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepo) FindItem(ctx context.Context, itemID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).Preload("Product").First(&item, itemID).Error
	return &item, err
}

// FindBySessionProduct returns nil (no error) when the product is not yet in
// the session's cart, so callers can merge quantities instead of duplicating
// lines.
func (r *cartRepo) FindBySessionProduct(ctx context.Context, sessionID, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) UpdateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepo) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CartItem{}, itemID).Error
}

func (r *cartRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Preload("Product").
		Order("added_at ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepo) ClearSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
	return tx.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.CartItem{}).Error
}
