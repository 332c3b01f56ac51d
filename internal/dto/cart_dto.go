package dto

import "github.com/shopspring/decimal"

type AddCartItemRequest struct {
	SessionID string          `json:"session_id" validate:"required,uuid"`
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"   validate:"min=0"`
	Notes     *string         `json:"notes"`
}

type UpdateCartItemRequest struct {
	Quantity int             `json:"quantity" validate:"required,min=1"`
	Discount decimal.Decimal `json:"discount" validate:"min=0"`
}

// ApplyTaxRequest applies a tax rate to every item in the session's cart.
// A nil rate means: use the branch POS settings (10% fallback).
type ApplyTaxRequest struct {
	SessionID string           `json:"session_id" validate:"required,uuid"`
	TaxRate   *decimal.Decimal `json:"tax_rate"   validate:"omitempty"`
}

// CheckoutRequest converts the session's cart into a draft sale.
type CheckoutRequest struct {
	SessionID     string  `json:"session_id" validate:"required,uuid"`
	CustomerID    *string `json:"customer_id"    validate:"omitempty,uuid"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=cash credit_card debit_card mobile_payment other"`
}

type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   string          `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
	Notes     *string         `json:"notes"`
}

type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	TaxTotal  decimal.Decimal    `json:"tax_total"`
	Total     decimal.Decimal    `json:"total"`
}
