package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationLowStock    = "low_stock"
	NotificationStockOut    = "stock_out"
	NotificationNewSale     = "new_sale"
	NotificationNewPurchase = "new_purchase"
	NotificationSystem      = "system"
)

// Delivery methods.
const (
	DeliveryEmail = "email"
	DeliverySMS   = "sms"
	DeliveryBoth  = "both"
)

// Notification statuses. The only transitions are pending → sent and
// pending → failed; a row never reverts.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification is created reactively on qualifying state changes (low stock,
// purchase receipt) and dispatched asynchronously by the notification worker.
// Rows are never mutated by users.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           string    `gorm:"type:varchar(20);not null"`
	Title          string    `gorm:"not null"`
	Message        string    `gorm:"not null"`
	RecipientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DeliveryMethod string    `gorm:"type:varchar(10);not null;default:'email'"`
	Status         string    `gorm:"type:varchar(10);not null;default:'pending';index"`
	SentAt         *time.Time
	LastError      *string
	// RelatedObjectType/ID point back at the record that triggered the alert
	RelatedObjectType *string    `gorm:"type:varchar(50)"`
	RelatedObjectID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time

	Recipient *User `gorm:"foreignKey:RecipientID"`
}
