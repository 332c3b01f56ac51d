package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory tracks the stock of one product at one branch.
// The (ProductID, BranchID) pair is unique; Quantity is never negative.
type Inventory struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_branch;not null"`
	BranchID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_branch;not null"`
	Quantity        int       `gorm:"not null;default:0"`
	ReorderLevel    int       `gorm:"not null;default:5"`
	LastRestockDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	Branch  *Branch  `gorm:"foreignKey:BranchID"`
}

func (Inventory) TableName() string { return "inventories" }

// IsLowStock reports whether the row is at or below its reorder level.
// Computed at read time; there is no persisted low-stock flag.
func (i *Inventory) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// Stock movement types.
const (
	MovementSale             = "sale"
	MovementSaleCancel       = "sale_cancel"
	MovementPurchaseReceipt  = "purchase_receipt"
	MovementManualAdjustment = "manual_adjustment"
)

// StockMovement is an immutable ledger entry recording every stock change.
// Entries are never modified or deleted — corrections create inverse entries.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	// Quantity is signed: positive = stock in, negative = stock out
	Quantity       int `gorm:"not null"`
	QuantityBefore int `gorm:"not null"`
	QuantityAfter  int `gorm:"not null"`
	Reason         string
	// ReferenceID links to the originating Sale or Purchase if applicable
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
