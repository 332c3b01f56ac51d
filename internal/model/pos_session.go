package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POS session statuses. Closed and force-closed are terminal.
const (
	SessionActive      = "active"
	SessionClosed      = "closed"
	SessionForceClosed = "force_closed"
)

// POSSession represents a staff member's shift at one branch.
// At most one active session per (staff, branch) is allowed; totals only
// accumulate while active.
type POSSession struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID        uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'"`
	OpeningTime    time.Time
	ClosingTime    *time.Time
	OpeningBalance decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	ClosingBalance *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CashSales      decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	CardSales      decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	OtherSales     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	TotalSales     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	TransactionCount int            `gorm:"not null;default:0"`
	CashInDrawer   decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	Notes          *string
	ClosedByID     *uuid.UUID `gorm:"type:uuid"`

	Staff  *User   `gorm:"foreignKey:StaffID"`
	Branch *Branch `gorm:"foreignKey:BranchID"`
}

func (POSSession) TableName() string { return "pos_sessions" }

// IsTerminal reports whether the session accepts no further updates.
func (s *POSSession) IsTerminal() bool {
	return s.Status != SessionActive
}

// Cash drawer operation types. "in" types add to the drawer, "out" types
// subtract.
const (
	DrawerMobileIn        = "mobile_in"
	DrawerMobileOut       = "mobile_out"
	DrawerWalletTopup     = "wallet_topup"
	DrawerWalletRefund    = "wallet_refund"
	DrawerCardRefund      = "card_refund"
	DrawerBankTransferIn  = "bank_transfer_in"
	DrawerBankTransferOut = "bank_transfer_out"
	DrawerAdjustment      = "adjustment"
)

// CashDrawerOperation is an immutable entry in the session's drawer ledger.
type CashDrawerOperation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(30);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PerformedByID *uuid.UUID      `gorm:"type:uuid"`
	Notes         *string
	CreatedAt     time.Time
}

// POSSetting holds per-branch POS configuration, one row per branch.
type POSSetting struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	// TaxRate is a percentage
	TaxRate            decimal.Decimal `gorm:"type:decimal(5,2);not null;default:10"`
	ReceiptHeader      *string
	ReceiptFooter      *string
	EnableDiscounts    bool            `gorm:"not null;default:true"`
	MinDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MaxDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CalculateTax returns amount × TaxRate / 100.
func (s *POSSetting) CalculateTax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(s.TaxRate).Div(decimal.NewFromInt(100))
}

// IsDiscountAllowed checks a discount percentage against the configured bounds.
func (s *POSSetting) IsDiscountAllowed(pct decimal.Decimal) bool {
	return pct.GreaterThanOrEqual(s.MinDiscountPercent) && pct.LessThanOrEqual(s.MaxDiscountPercent)
}
