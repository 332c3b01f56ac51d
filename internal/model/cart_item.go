package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is an in-progress, not-yet-committed sale line scoped to a POS
// session. Total = UnitPrice×Quantity − Discount + TaxAmount, recomputed by
// the cart service on every mutation.
type CartItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes     *string
	AddedAt   time.Time `gorm:"autoCreateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// Recalculate sets Total from the current quantity, price, discount and tax.
func (c *CartItem) Recalculate() {
	c.Total = c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity))).Sub(c.Discount).Add(c.TaxAmount)
}

// SubtotalBeforeTax returns UnitPrice×Quantity − Discount.
func (c *CartItem) SubtotalBeforeTax() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity))).Sub(c.Discount)
}
