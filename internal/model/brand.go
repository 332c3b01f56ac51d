package model

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a product manufacturer.
type Brand struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	// LogoPath is relative to the configured upload directory
	LogoPath  *string
	Website   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
