package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer stores buyer contact details. Sales may reference a customer
// but never own one.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null;index"`
	Email       *string
	PhoneNumber string `gorm:"type:varchar(15);not null;index"`
	Address     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
