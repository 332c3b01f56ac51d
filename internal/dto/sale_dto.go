package dto

import "github.com/shopspring/decimal"

// ─── Customers ───────────────────────────────────────────────────────────────

type CustomerRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=15"`
	Address     *string `json:"address"`
}

type CustomerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Address     *string `json:"address"`
}

// ─── Sales ───────────────────────────────────────────────────────────────────

type StartSaleRequest struct {
	SessionID     string  `json:"session_id" validate:"required,uuid"`
	CustomerID    *string `json:"customer_id"    validate:"omitempty,uuid"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash credit_card debit_card mobile_payment other"`
	Notes         *string `json:"notes"`
}

type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
	// UnitPrice overrides the catalog selling price when set (price override)
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type UpdateSaleItemRequest struct {
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Discount decimal.Decimal `json:"discount" validate:"min=0"`
}

// UpdateSaleRequest edits the header of a draft sale.
type UpdateSaleRequest struct {
	CustomerID     *string          `json:"customer_id"     validate:"omitempty,uuid"`
	PaymentMethod  string           `json:"payment_method"  validate:"omitempty,oneof=cash credit_card debit_card mobile_payment other"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	Notes          *string          `json:"notes"`
}

type SaleFilter struct {
	Date     string `form:"date"` // YYYY-MM-DD; empty = today
	Status   string `form:"status,default=completed" validate:"omitempty,oneof=draft completed canceled all"`
	BranchID string `form:"branch" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Product    string          `json:"product,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Discount   decimal.Decimal `json:"discount"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	SessionID      string             `json:"session_id"`
	BranchID       string             `json:"branch_id"`
	CustomerID     *string            `json:"customer_id"`
	Customer       string             `json:"customer,omitempty"`
	StaffID        *string            `json:"staff_id"`
	PaymentMethod  string             `json:"payment_method"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Status         string             `json:"status"`
	Items          []SaleItemResponse `json:"items"`
	SaleDate       string             `json:"sale_date"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
