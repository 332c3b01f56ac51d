package model

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a physical store location — the scoping unit for inventory,
// sales and POS sessions.
type Branch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"not null;index"`
	Address     string    `gorm:"not null"`
	PhoneNumber string    `gorm:"type:varchar(15);not null"`
	Email       *string
	// ManagerID is the user notified on low-stock and purchase-receipt events
	ManagerID *uuid.UUID `gorm:"type:uuid"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Manager *User `gorm:"foreignKey:ManagerID"`
}

func (Branch) TableName() string { return "branches" }
