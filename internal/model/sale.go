package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleDraft     = "draft"
	SaleCompleted = "completed"
	SaleCanceled  = "canceled"
)

// PaymentMethod is an enumerated payment type. Session totals are routed by
// Bucket(), not by display-string matching.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentDebitCard     PaymentMethod = "debit_card"
	PaymentMobilePayment PaymentMethod = "mobile_payment"
	PaymentOther         PaymentMethod = "other"
)

// Payment buckets used by POS session totals.
const (
	BucketCash  = "cash"
	BucketCard  = "card"
	BucketOther = "other"
)

// Valid reports whether m is one of the enumerated methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentMobilePayment, PaymentOther:
		return true
	}
	return false
}

// Bucket maps the payment method onto the session total it accumulates into.
func (m PaymentMethod) Bucket() string {
	switch m {
	case PaymentCash:
		return BucketCash
	case PaymentCreditCard, PaymentDebitCard:
		return BucketCard
	default:
		return BucketOther
	}
}

// Sale is a POS transaction. It starts as a draft, accumulates items, and is
// completed (decrementing stock) or canceled. TotalAmount = Subtotal +
// TaxAmount − DiscountAmount, recomputed by the sale service on every item
// mutation.
type Sale struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// InvoiceNumber is "INV-{YYYYMMDD}-{seq}" with a per-day atomic counter
	InvoiceNumber  string     `gorm:"uniqueIndex;not null"`
	SaleDate       time.Time  `gorm:"not null;index"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index"`
	BranchID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	StaffID        *uuid.UUID `gorm:"type:uuid;index"`
	SessionID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(10);not null;default:'draft'"`
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Branch   *Branch    `gorm:"foreignKey:BranchID"`
	Staff    *User      `gorm:"foreignKey:StaffID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// SaleItem is one line of a Sale.
// TotalPrice = Quantity × UnitPrice − Discount, recomputed on every mutation.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// LineTotal computes Quantity × UnitPrice − Discount.
func (i *SaleItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}
