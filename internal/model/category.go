package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products. Categories form a tree via ParentID;
// parent chains must stay acyclic — enforced by the catalog service.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	// ParentID is nulled on parent deletion, never cascaded
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Parent *Category `gorm:"foreignKey:ParentID"`
}

func (Category) TableName() string { return "categories" }
