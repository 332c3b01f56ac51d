package service_test

import (
	"context"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture() (service.SessionService, *stubSessionRepo, *model.Branch) {
	repo := newStubSessionRepo()
	branchRepo := newStubBranchRepo()
	branch := branchRepo.seed(nil)
	return service.NewSessionService(repo, branchRepo), repo, branch
}

func TestOpenSession_SecondActiveRejected(t *testing.T) {
	svc, _, branch := newSessionFixture()
	staffID := uuid.New()

	resp, err := svc.OpenSession(context.Background(), staffID, dto.OpenSessionRequest{
		BranchID:       branch.ID.String(),
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionActive, resp.Status)
	assert.Equal(t, "100", resp.CashInDrawer.String())

	_, err = svc.OpenSession(context.Background(), staffID, dto.OpenSessionRequest{
		BranchID:       branch.ID.String(),
		OpeningBalance: decimal.NewFromInt(50),
	})
	assert.ErrorContains(t, err, "active session already exists")

	// A different staff member at the same branch is fine
	_, err = svc.OpenSession(context.Background(), uuid.New(), dto.OpenSessionRequest{
		BranchID:       branch.ID.String(),
		OpeningBalance: decimal.NewFromInt(50),
	})
	assert.NoError(t, err)
}

func TestDrawerOperation_OutExceedingCashRejected(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 50)

	_, err := svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerWalletRefund,
		Amount:    decimal.NewFromInt(80),
	})
	assert.ErrorContains(t, err, "does not hold enough cash")
	assert.Equal(t, "50", session.CashInDrawer.String())
}

func TestDrawerOperation_NegativeAdjustmentBounded(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 100)

	// Removing more than the drawer holds is refused
	_, err := svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerAdjustment,
		Amount:    decimal.NewFromInt(-150),
	})
	assert.ErrorContains(t, err, "does not hold enough cash")
	assert.Equal(t, "100", session.CashInDrawer.String())

	// Removing exactly the drawer contents empties it
	_, err = svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerAdjustment,
		Amount:    decimal.NewFromInt(-100),
	})
	require.NoError(t, err)
	assert.Equal(t, "0", repo.sessions[session.ID].CashInDrawer.String())
}

func TestDrawerOperation_InAndOutMoveTheDrawer(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 100)

	_, err := svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerMobileIn,
		Amount:    decimal.NewFromInt(30),
	})
	require.NoError(t, err)
	assert.Equal(t, "130", repo.sessions[session.ID].CashInDrawer.String())

	_, err = svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerCardRefund,
		Amount:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "110", repo.sessions[session.ID].CashInDrawer.String())

	// Adjustments are signed
	_, err = svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerAdjustment,
		Amount:    decimal.NewFromInt(-10),
	})
	require.NoError(t, err)
	assert.Equal(t, "100", repo.sessions[session.ID].CashInDrawer.String())

	ops, _ := repo.ListDrawerOps(context.Background(), session.ID)
	assert.Len(t, ops, 3)
}

func TestCloseSession_TwiceRejected(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 100)

	report, err := svc.CloseSession(context.Background(), dto.CloseSessionRequest{
		SessionID:      session.ID.String(),
		ClosingBalance: decimal.NewFromInt(100),
		CashInDrawer:   decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionClosed, report.Session.Status)

	_, err = svc.CloseSession(context.Background(), dto.CloseSessionRequest{
		SessionID:      session.ID.String(),
		ClosingBalance: decimal.NewFromInt(100),
		CashInDrawer:   decimal.NewFromInt(100),
	})
	assert.ErrorContains(t, err, "already closed")
}

func TestSessionReport_ExpectedCashAndVariance(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 100)

	// Simulate a completed cash sale of 50
	err := svc.ApplySaleTotalsTx(context.Background(), nil, session.ID, decimal.NewFromInt(50), model.BucketCash, false)
	require.NoError(t, err)

	// +20 mobile money in, −10 wallet refund
	_, err = svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerMobileIn,
		Amount:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	_, err = svc.RecordDrawerOperation(context.Background(), uuid.New(), dto.DrawerOperationRequest{
		SessionID: session.ID.String(),
		Type:      model.DrawerWalletRefund,
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// Open session: expected cash is reported, variance is not yet known
	report, err := svc.GetSessionReport(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "160", report.ExpectedCash.String()) // 100 + 50 + 20 − 10
	assert.Nil(t, report.CashVariance)

	// Close declaring 150 in the drawer: variance = 150 − 160 = −10
	report, err = svc.CloseSession(context.Background(), dto.CloseSessionRequest{
		SessionID:      session.ID.String(),
		ClosingBalance: decimal.NewFromInt(150),
		CashInDrawer:   decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	require.NotNil(t, report.CashVariance)
	assert.Equal(t, "-10", report.CashVariance.String())
}

func TestForceCloseSession_StampsAdmin(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 100)
	adminID := uuid.New()

	resp, err := svc.ForceCloseSession(context.Background(), adminID, dto.ForceCloseSessionRequest{
		SessionID: session.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionForceClosed, resp.Status)
	require.NotNil(t, repo.sessions[session.ID].ClosedByID)
	assert.Equal(t, adminID, *repo.sessions[session.ID].ClosedByID)
}

func TestApplySaleTotals_ReverseBacksOut(t *testing.T) {
	svc, repo, branch := newSessionFixture()
	session := repo.seedActive(uuid.New(), branch.ID, 0)
	amount := decimal.NewFromInt(75)

	require.NoError(t, svc.ApplySaleTotalsTx(context.Background(), nil, session.ID, amount, model.BucketOther, false))
	assert.Equal(t, "75", repo.sessions[session.ID].OtherSales.String())
	assert.Equal(t, 1, repo.sessions[session.ID].TransactionCount)

	require.NoError(t, svc.ApplySaleTotalsTx(context.Background(), nil, session.ID, amount, model.BucketOther, true))
	assert.Equal(t, "0", repo.sessions[session.ID].OtherSales.String())
	assert.Equal(t, 0, repo.sessions[session.ID].TransactionCount)
}

func TestPOSSettings_DefaultsWhenAbsent(t *testing.T) {
	svc, _, branch := newSessionFixture()

	setting, err := svc.GetSetting(context.Background(), branch.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", setting.TaxRate.String())
	assert.True(t, setting.EnableDiscounts)
	assert.Equal(t, "20", setting.MaxDiscountPercent.String())
}

func TestSaveSetting_DiscountBoundsValidated(t *testing.T) {
	svc, _, branch := newSessionFixture()

	min := decimal.NewFromInt(30)
	max := decimal.NewFromInt(10)
	_, err := svc.SaveSetting(context.Background(), dto.POSSettingRequest{
		BranchID:           branch.ID.String(),
		TaxRate:            decimal.NewFromInt(8),
		MinDiscountPercent: &min,
		MaxDiscountPercent: &max,
	})
	assert.ErrorContains(t, err, "cannot exceed")
}
