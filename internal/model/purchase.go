package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase statuses.
const (
	PurchasePending  = "pending"
	PurchaseReceived = "received"
	PurchaseCanceled = "canceled"
)

// Purchase is an order placed with a supplier for one branch.
// Status: "pending" | "received" | "canceled". Receiving credits inventory
// exactly once; the transition is guarded by the purchase service.
type Purchase struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	// ReferenceNumber is "PO-" + a zero-padded value from a DB sequence
	ReferenceNumber string    `gorm:"uniqueIndex;not null"`
	PurchaseDate    time.Time `gorm:"not null"`
	Status          string    `gorm:"type:varchar(10);not null;default:'pending'"`
	Notes           *string
	CreatedByID     *uuid.UUID      `gorm:"type:uuid"`
	ReceivedByID    *uuid.UUID      `gorm:"type:uuid"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	Branch   *Branch        `gorm:"foreignKey:BranchID"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// PurchaseItem is one line of a Purchase.
// TotalPrice = Quantity × UnitPrice, recomputed by the service on every edit.
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
