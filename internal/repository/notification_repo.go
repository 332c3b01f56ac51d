package repository

import (
	"context"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	CreateTx(tx *gorm.DB, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	List(ctx context.Context, recipientID uuid.UUID, filter dto.NotificationFilter) ([]model.Notification, int64, error)
	// ListStuckPending returns pending notifications older than the cutoff;
	// the retry cron requeues them for delivery.
	ListStuckPending(ctx context.Context, olderThan time.Time, limit int) ([]model.Notification, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) CreateTx(tx *gorm.DB, n *model.Notification) error {
	return tx.Create(n).Error
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).Preload("Recipient").First(&n, id).Error
	return &n, err
}

func (r *notificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND status = ?", id, model.NotificationPending).
		Updates(map[string]any{"status": model.NotificationSent, "sent_at": now}).Error
}

func (r *notificationRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND status = ?", id, model.NotificationPending).
		Updates(map[string]any{"status": model.NotificationFailed, "last_error": reason}).Error
}

func (r *notificationRepo) List(ctx context.Context, recipientID uuid.UUID, filter dto.NotificationFilter) ([]model.Notification, int64, error) {
	var rows []model.Notification
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ?", recipientID)

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&rows).Error

	return rows, total, err
}

func (r *notificationRepo) ListStuckPending(ctx context.Context, olderThan time.Time, limit int) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.NotificationPending, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
