package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor the store purchases stock from.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null;index"`
	ContactPerson *string
	Email         *string
	PhoneNumber   string `gorm:"type:varchar(15);not null"`
	Address       *string
	Website       *string
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Purchases []Purchase `gorm:"foreignKey:SupplierID"`
}
