package repository

import (
	"context"
	"errors"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, s *model.POSSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.POSSession, error)
	FindActiveByStaff(ctx context.Context, staffID, branchID uuid.UUID) (*model.POSSession, error)
	Update(ctx context.Context, s *model.POSSession) error
	UpdateTx(tx *gorm.DB, s *model.POSSession) error
	ListActive(ctx context.Context, branchID uuid.UUID) ([]model.POSSession, error)
	CreateDrawerOp(ctx context.Context, op *model.CashDrawerOperation) error
	ListDrawerOps(ctx context.Context, sessionID uuid.UUID) ([]model.CashDrawerOperation, error)

	FindSetting(ctx context.Context, branchID uuid.UUID) (*model.POSSetting, error)
	SaveSetting(ctx context.Context, s *model.POSSetting) error
	DB() *gorm.DB
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) DB() *gorm.DB { return r.db }

func (r *sessionRepo) Create(ctx context.Context, s *model.POSSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.POSSession, error) {
	var s model.POSSession
	err := r.db.WithContext(ctx).Preload("Staff").Preload("Branch").First(&s, id).Error
	return &s, err
}

// FindActiveByStaff returns nil (no error) when the staff member has no open
// session at the branch.
func (r *sessionRepo) FindActiveByStaff(ctx context.Context, staffID, branchID uuid.UUID) (*model.POSSession, error) {
	var s model.POSSession
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND branch_id = ? AND status = ?", staffID, branchID, model.SessionActive).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Update(ctx context.Context, s *model.POSSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sessionRepo) UpdateTx(tx *gorm.DB, s *model.POSSession) error {
	return tx.Save(s).Error
}

func (r *sessionRepo) ListActive(ctx context.Context, branchID uuid.UUID) ([]model.POSSession, error) {
	var sessions []model.POSSession
	q := r.db.WithContext(ctx).Where("status = ?", model.SessionActive)
	if branchID != uuid.Nil {
		q = q.Where("branch_id = ?", branchID)
	}
	err := q.Preload("Staff").Order("opening_time ASC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) CreateDrawerOp(ctx context.Context, op *model.CashDrawerOperation) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *sessionRepo) ListDrawerOps(ctx context.Context, sessionID uuid.UUID) ([]model.CashDrawerOperation, error) {
	var ops []model.CashDrawerOperation
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&ops).Error
	return ops, err
}

func (r *sessionRepo) FindSetting(ctx context.Context, branchID uuid.UUID) (*model.POSSetting, error) {
	var s model.POSSetting
	err := r.db.WithContext(ctx).Where("branch_id = ?", branchID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) SaveSetting(ctx context.Context, s *model.POSSetting) error {
	return r.db.WithContext(ctx).Save(s).Error
}
