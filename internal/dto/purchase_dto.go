package dto

import "github.com/shopspring/decimal"

// ─── Suppliers ───────────────────────────────────────────────────────────────

type SupplierRequest struct {
	Name          string  `json:"name"          validate:"required,min=2,max=100"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"   validate:"omitempty,email"`
	PhoneNumber   string  `json:"phone_number"  validate:"required,max=15"`
	Address       *string `json:"address"`
	Website       *string `json:"website" validate:"omitempty,url"`
}

type SupplierResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	PhoneNumber   string  `json:"phone_number"`
	Address       *string `json:"address"`
	Website       *string `json:"website"`
	Active        bool    `json:"active"`
}

// ─── Purchases ───────────────────────────────────────────────────────────────

type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required,uuid"`
	BranchID   string                `json:"branch_id"   validate:"required,uuid"`
	Notes      *string               `json:"notes"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseFilter struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending received canceled all"`
	BranchID string `form:"branch" validate:"omitempty,uuid"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Product    string          `json:"product,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type PurchaseResponse struct {
	ID              string                 `json:"id"`
	ReferenceNumber string                 `json:"reference_number"`
	SupplierID      string                 `json:"supplier_id"`
	Supplier        string                 `json:"supplier,omitempty"`
	BranchID        string                 `json:"branch_id"`
	Status          string                 `json:"status"`
	Notes           *string                `json:"notes"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Items           []PurchaseItemResponse `json:"items"`
	PurchaseDate    string                 `json:"purchase_date"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
