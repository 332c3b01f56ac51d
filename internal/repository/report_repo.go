package repository

import (
	"context"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, rep *model.Report) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error)
	Update(ctx context.Context, rep *model.Report) error
	List(ctx context.Context, page, limit int) ([]model.Report, int64, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).First(&rep, id).Error
	return &rep, err
}

func (r *reportRepo) Update(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *reportRepo) List(ctx context.Context, page, limit int) ([]model.Report, int64, error) {
	var rows []model.Report
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.Report{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}
