package dto

import "github.com/shopspring/decimal"

type OpenSessionRequest struct {
	BranchID       string          `json:"branch_id"       validate:"required,uuid"`
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"min=0"`
}

type CloseSessionRequest struct {
	SessionID      string          `json:"session_id"      validate:"required,uuid"`
	ClosingBalance decimal.Decimal `json:"closing_balance" validate:"min=0"`
	CashInDrawer   decimal.Decimal `json:"cash_in_drawer"  validate:"min=0"`
	Notes          *string         `json:"notes"`
}

type ForceCloseSessionRequest struct {
	SessionID string  `json:"session_id" validate:"required,uuid"`
	Notes     *string `json:"notes"`
}

type DrawerOperationRequest struct {
	SessionID string          `json:"session_id" validate:"required,uuid"`
	Type      string          `json:"type"       validate:"required,oneof=mobile_in mobile_out wallet_topup wallet_refund card_refund bank_transfer_in bank_transfer_out adjustment"`
	Amount    decimal.Decimal `json:"amount"     validate:"required"`
	Notes     *string         `json:"notes"`
}

type SessionResponse struct {
	ID               string           `json:"id"`
	StaffID          string           `json:"staff_id"`
	Staff            string           `json:"staff,omitempty"`
	BranchID         string           `json:"branch_id"`
	Status           string           `json:"status"`
	OpeningBalance   decimal.Decimal  `json:"opening_balance"`
	ClosingBalance   *decimal.Decimal `json:"closing_balance"`
	CashSales        decimal.Decimal  `json:"cash_sales"`
	CardSales        decimal.Decimal  `json:"card_sales"`
	OtherSales       decimal.Decimal  `json:"other_sales"`
	TotalSales       decimal.Decimal  `json:"total_sales"`
	TransactionCount int              `json:"transaction_count"`
	CashInDrawer     decimal.Decimal  `json:"cash_in_drawer"`
	Notes            *string          `json:"notes"`
	OpeningTime      string           `json:"opening_time"`
	ClosingTime      *string          `json:"closing_time"`
}

type DrawerOperationResponse struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes"`
	CreatedAt string          `json:"created_at"`
}

// SessionReportResponse is the shift summary returned on close and on demand.
type SessionReportResponse struct {
	Session          SessionResponse           `json:"session"`
	DrawerOperations []DrawerOperationResponse `json:"drawer_operations"`
	ExpectedCash     decimal.Decimal           `json:"expected_cash"`
	// CashVariance = declared drawer cash − expected cash; zero until close
	CashVariance *decimal.Decimal `json:"cash_variance"`
}

// ─── POS settings ────────────────────────────────────────────────────────────

type POSSettingRequest struct {
	BranchID           string           `json:"branch_id" validate:"required,uuid"`
	TaxRate            decimal.Decimal  `json:"tax_rate"  validate:"min=0,max=100"`
	ReceiptHeader      *string          `json:"receipt_header"`
	ReceiptFooter      *string          `json:"receipt_footer"`
	EnableDiscounts    *bool            `json:"enable_discounts"`
	MinDiscountPercent *decimal.Decimal `json:"min_discount_percent"`
	MaxDiscountPercent *decimal.Decimal `json:"max_discount_percent"`
}

type POSSettingResponse struct {
	BranchID           string          `json:"branch_id"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	ReceiptHeader      *string         `json:"receipt_header"`
	ReceiptFooter      *string         `json:"receipt_footer"`
	EnableDiscounts    bool            `json:"enable_discounts"`
	MinDiscountPercent decimal.Decimal `json:"min_discount_percent"`
	MaxDiscountPercent decimal.Decimal `json:"max_discount_percent"`
}
