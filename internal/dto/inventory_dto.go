package dto

// InventoryFilter is bound from the query string of GET /v1/inventory.
type InventoryFilter struct {
	BranchID  string `form:"branch"  validate:"omitempty,uuid"`
	ProductID string `form:"product" validate:"omitempty,uuid"`
	LowStock  bool   `form:"low_stock"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// AdjustStockRequest applies a signed delta to one (product, branch) row.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	BranchID  string `json:"branch_id"  validate:"required,uuid"`
	Delta     int    `json:"delta"      validate:"required"`
	Reason    string `json:"reason"     validate:"required,min=3"`
}

// SetReorderLevelRequest changes the low-stock threshold of one row.
type SetReorderLevelRequest struct {
	ProductID    string `json:"product_id"    validate:"required,uuid"`
	BranchID     string `json:"branch_id"     validate:"required,uuid"`
	ReorderLevel int    `json:"reorder_level" validate:"min=0"`
}

type InventoryResponse struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id"`
	Product         string  `json:"product,omitempty"`
	SKU             string  `json:"sku,omitempty"`
	BranchID        string  `json:"branch_id"`
	Branch          string  `json:"branch,omitempty"`
	Quantity        int     `json:"quantity"`
	ReorderLevel    int     `json:"reorder_level"`
	LowStock        bool    `json:"low_stock"`
	LastRestockDate *string `json:"last_restock_date"`
}

type InventoryListResponse struct {
	Data  []InventoryResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	BranchID  string `form:"branch"  validate:"omitempty,uuid"`
	ProductID string `form:"product" validate:"omitempty,uuid"`
	Type      string `form:"type"    validate:"omitempty,oneof=sale sale_cancel purchase_receipt manual_adjustment"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovementResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	Product        string  `json:"product,omitempty"`
	BranchID       string  `json:"branch_id"`
	Type           string  `json:"type"`
	Quantity       int     `json:"quantity"`
	QuantityBefore int     `json:"quantity_before"`
	QuantityAfter  int     `json:"quantity_after"`
	Reason         string  `json:"reason"`
	ReferenceID    *string `json:"reference_id"`
	CreatedAt      string  `json:"created_at"`
}
