package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionService interface {
	// OpenSession starts a shift. A staff member can have at most one active
	// session per branch; the partial unique index backs this up at the DB.
	OpenSession(ctx context.Context, staffID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	// GetActiveSession returns the session only when it is still active.
	GetActiveSession(ctx context.Context, id uuid.UUID) (*model.POSSession, error)
	ListActiveSessions(ctx context.Context, branchID uuid.UUID) ([]dto.SessionResponse, error)
	// ApplySaleTotalsTx rolls a completed sale into the session buckets inside
	// the caller's transaction. reverse backs a cancellation out again.
	ApplySaleTotalsTx(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, amount decimal.Decimal, bucket string, reverse bool) error
	RecordDrawerOperation(ctx context.Context, performedBy uuid.UUID, req dto.DrawerOperationRequest) (*dto.DrawerOperationResponse, error)
	CloseSession(ctx context.Context, req dto.CloseSessionRequest) (*dto.SessionReportResponse, error)
	// ForceCloseSession closes someone else's session without a declared count
	// (admin recovery for abandoned shifts).
	ForceCloseSession(ctx context.Context, adminID uuid.UUID, req dto.ForceCloseSessionRequest) (*dto.SessionResponse, error)
	GetSessionReport(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error)

	GetSetting(ctx context.Context, branchID uuid.UUID) (*dto.POSSettingResponse, error)
	SaveSetting(ctx context.Context, req dto.POSSettingRequest) (*dto.POSSettingResponse, error)
}

type sessionService struct {
	repo     repository.SessionRepository
	branches repository.BranchRepository
}

func NewSessionService(repo repository.SessionRepository, branches repository.BranchRepository) SessionService {
	return &sessionService{repo: repo, branches: branches}
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

func (s *sessionService) OpenSession(ctx context.Context, staffID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch_id")
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, errors.New("branch not found")
	}
	existing, err := s.repo.FindActiveByStaff(ctx, staffID, branchID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("an active session already exists for this staff member at this branch (%s)", existing.ID)
	}

	session := model.POSSession{
		StaffID:        staffID,
		BranchID:       branchID,
		Status:         model.SessionActive,
		OpeningTime:    time.Now(),
		OpeningBalance: req.OpeningBalance,
		CashInDrawer:   req.OpeningBalance,
	}
	if err := s.repo.Create(ctx, &session); err != nil {
		if strings.Contains(err.Error(), "idx_sessions_one_active") {
			return nil, errors.New("an active session already exists for this staff member at this branch")
		}
		return nil, err
	}
	return s.GetSession(ctx, session.ID)
}

func (s *sessionService) GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("session not found")
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) GetActiveSession(ctx context.Context, id uuid.UUID) (*model.POSSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("session is %s", session.Status)
	}
	return session, nil
}

func (s *sessionService) ListActiveSessions(ctx context.Context, branchID uuid.UUID) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.ListActive(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToResponse(&sessions[i]))
	}
	return out, nil
}

// ── Sale totals ───────────────────────────────────────────────────────────────

func (s *sessionService) ApplySaleTotalsTx(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, amount decimal.Decimal, bucket string, reverse bool) error {
	session, err := s.findForUpdate(ctx, tx, sessionID)
	if err != nil {
		return err
	}
	if session.IsTerminal() {
		return fmt.Errorf("session is %s and no longer accumulates sales", session.Status)
	}

	delta := amount
	count := 1
	if reverse {
		delta = amount.Neg()
		count = -1
	}
	switch bucket {
	case model.BucketCash:
		session.CashSales = session.CashSales.Add(delta)
		session.CashInDrawer = session.CashInDrawer.Add(delta)
	case model.BucketCard:
		session.CardSales = session.CardSales.Add(delta)
	default:
		session.OtherSales = session.OtherSales.Add(delta)
	}
	session.TotalSales = session.TotalSales.Add(delta)
	session.TransactionCount += count
	return s.repo.UpdateTx(tx, session)
}

// findForUpdate reads the session through the caller's transaction with a row
// lock, falling back to the plain repo when no transaction is in play.
func (s *sessionService) findForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.POSSession, error) {
	if tx == nil {
		return s.repo.FindByID(ctx, id)
	}
	var session model.POSSession
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ── Drawer operations ─────────────────────────────────────────────────────────

func (s *sessionService) RecordDrawerOperation(ctx context.Context, performedBy uuid.UUID, req dto.DrawerOperationRequest) (*dto.DrawerOperationResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.GetActiveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) && req.Type != model.DrawerAdjustment {
		return nil, errors.New("amount must be positive")
	}

	switch req.Type {
	case model.DrawerMobileIn, model.DrawerWalletTopup, model.DrawerBankTransferIn:
		session.CashInDrawer = session.CashInDrawer.Add(req.Amount)
	case model.DrawerMobileOut, model.DrawerWalletRefund, model.DrawerCardRefund, model.DrawerBankTransferOut:
		if session.CashInDrawer.LessThan(req.Amount) {
			return nil, errors.New("drawer does not hold enough cash for this operation")
		}
		session.CashInDrawer = session.CashInDrawer.Sub(req.Amount)
	case model.DrawerAdjustment:
		// Signed: positive adds, negative removes. A removal is bounded by
		// the drawer like any other "out" type.
		if req.Amount.IsNegative() && session.CashInDrawer.LessThan(req.Amount.Neg()) {
			return nil, errors.New("drawer does not hold enough cash for this operation")
		}
		session.CashInDrawer = session.CashInDrawer.Add(req.Amount)
	default:
		return nil, fmt.Errorf("unknown drawer operation type %q", req.Type)
	}

	op := model.CashDrawerOperation{
		SessionID:     sessionID,
		Type:          req.Type,
		Amount:        req.Amount,
		PerformedByID: &performedBy,
		Notes:         req.Notes,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(tx, session); err != nil {
			return err
		}
		if tx == nil {
			return s.repo.CreateDrawerOp(ctx, &op)
		}
		return tx.WithContext(ctx).Create(&op).Error
	})
	if err != nil {
		return nil, err
	}
	return drawerOpToResponse(&op), nil
}

// ── Closing ───────────────────────────────────────────────────────────────────

func (s *sessionService) CloseSession(ctx context.Context, req dto.CloseSessionRequest) (*dto.SessionReportResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("session is already %s", session.Status)
	}

	now := time.Now()
	closing := req.ClosingBalance
	session.Status = model.SessionClosed
	session.ClosingTime = &now
	session.ClosingBalance = &closing
	session.CashInDrawer = req.CashInDrawer
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.GetSessionReport(ctx, sessionID)
}

func (s *sessionService) ForceCloseSession(ctx context.Context, adminID uuid.UUID, req dto.ForceCloseSessionRequest) (*dto.SessionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, errors.New("invalid session_id")
	}
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session not found")
	}
	if session.IsTerminal() {
		return nil, fmt.Errorf("session is already %s", session.Status)
	}

	now := time.Now()
	session.Status = model.SessionForceClosed
	session.ClosingTime = &now
	session.ClosedByID = &adminID
	if req.Notes != nil {
		session.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.GetSession(ctx, sessionID)
}

// ── Reporting ─────────────────────────────────────────────────────────────────

func (s *sessionService) GetSessionReport(ctx context.Context, sessionID uuid.UUID) (*dto.SessionReportResponse, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, errors.New("session not found")
	}
	ops, err := s.repo.ListDrawerOps(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	expected := session.OpeningBalance.Add(session.CashSales)
	opResponses := make([]dto.DrawerOperationResponse, 0, len(ops))
	for i := range ops {
		op := &ops[i]
		switch op.Type {
		case model.DrawerMobileIn, model.DrawerWalletTopup, model.DrawerBankTransferIn, model.DrawerAdjustment:
			expected = expected.Add(op.Amount)
		case model.DrawerMobileOut, model.DrawerWalletRefund, model.DrawerCardRefund, model.DrawerBankTransferOut:
			expected = expected.Sub(op.Amount)
		}
		opResponses = append(opResponses, *drawerOpToResponse(op))
	}

	report := &dto.SessionReportResponse{
		Session:          *sessionToResponse(session),
		DrawerOperations: opResponses,
		ExpectedCash:     expected,
	}
	if session.IsTerminal() {
		variance := session.CashInDrawer.Sub(expected)
		report.CashVariance = &variance
	}
	return report, nil
}

// ── Settings ──────────────────────────────────────────────────────────────────

func (s *sessionService) GetSetting(ctx context.Context, branchID uuid.UUID) (*dto.POSSettingResponse, error) {
	setting, err := s.repo.FindSetting(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting = defaultSetting(branchID)
	}
	return settingToResponse(setting), nil
}

func (s *sessionService) SaveSetting(ctx context.Context, req dto.POSSettingRequest) (*dto.POSSettingResponse, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, errors.New("invalid branch_id")
	}
	if _, err := s.branches.FindByID(ctx, branchID); err != nil {
		return nil, errors.New("branch not found")
	}
	setting, err := s.repo.FindSetting(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		setting = defaultSetting(branchID)
	}

	setting.TaxRate = req.TaxRate
	if req.ReceiptHeader != nil {
		setting.ReceiptHeader = req.ReceiptHeader
	}
	if req.ReceiptFooter != nil {
		setting.ReceiptFooter = req.ReceiptFooter
	}
	if req.EnableDiscounts != nil {
		setting.EnableDiscounts = *req.EnableDiscounts
	}
	if req.MinDiscountPercent != nil {
		setting.MinDiscountPercent = *req.MinDiscountPercent
	}
	if req.MaxDiscountPercent != nil {
		setting.MaxDiscountPercent = *req.MaxDiscountPercent
	}
	if setting.MinDiscountPercent.GreaterThan(setting.MaxDiscountPercent) {
		return nil, errors.New("min_discount_percent cannot exceed max_discount_percent")
	}
	if err := s.repo.SaveSetting(ctx, setting); err != nil {
		return nil, err
	}
	return settingToResponse(setting), nil
}

func defaultSetting(branchID uuid.UUID) *model.POSSetting {
	return &model.POSSetting{
		BranchID:           branchID,
		TaxRate:            decimal.NewFromInt(10),
		EnableDiscounts:    true,
		MaxDiscountPercent: decimal.NewFromInt(20),
	}
}

// ── Response mapping ──────────────────────────────────────────────────────────

func sessionToResponse(s *model.POSSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:               s.ID.String(),
		StaffID:          s.StaffID.String(),
		BranchID:         s.BranchID.String(),
		Status:           s.Status,
		OpeningBalance:   s.OpeningBalance,
		ClosingBalance:   s.ClosingBalance,
		CashSales:        s.CashSales,
		CardSales:        s.CardSales,
		OtherSales:       s.OtherSales,
		TotalSales:       s.TotalSales,
		TransactionCount: s.TransactionCount,
		CashInDrawer:     s.CashInDrawer,
		Notes:            s.Notes,
		OpeningTime:      s.OpeningTime.Format("2006-01-02T15:04:05Z"),
	}
	if s.Staff != nil {
		resp.Staff = s.Staff.Username
	}
	if s.ClosingTime != nil {
		t := s.ClosingTime.Format("2006-01-02T15:04:05Z")
		resp.ClosingTime = &t
	}
	return resp
}

func drawerOpToResponse(op *model.CashDrawerOperation) *dto.DrawerOperationResponse {
	return &dto.DrawerOperationResponse{
		ID:        op.ID.String(),
		SessionID: op.SessionID.String(),
		Type:      op.Type,
		Amount:    op.Amount,
		Notes:     op.Notes,
		CreatedAt: op.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func settingToResponse(s *model.POSSetting) *dto.POSSettingResponse {
	return &dto.POSSettingResponse{
		BranchID:           s.BranchID.String(),
		TaxRate:            s.TaxRate,
		ReceiptHeader:      s.ReceiptHeader,
		ReceiptFooter:      s.ReceiptFooter,
		EnableDiscounts:    s.EnableDiscounts,
		MinDiscountPercent: s.MinDiscountPercent,
		MaxDiscountPercent: s.MaxDiscountPercent,
	}
}
