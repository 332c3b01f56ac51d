package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product types.
const (
	ProductTypePhone     = "phone"
	ProductTypeAccessory = "accessory"
)

// Accessory types.
const (
	AccessoryTypeCase            = "case"
	AccessoryTypeScreenProtector = "screen_protector"
	AccessoryTypeCharger         = "charger"
	AccessoryTypeHeadphone       = "headphone"
	AccessoryTypeCable           = "cable"
	AccessoryTypePowerBank       = "power_bank"
	AccessoryTypeMemoryCard      = "memory_card"
	AccessoryTypeOther           = "other"
)

// Product holds the attributes shared by every catalog item.
// Type discriminates the specialization; exactly one of Phone / Accessory
// carries the type-specific fields.
// Products are soft-disabled via Active, never hard-deleted implicitly.
type Product struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type string    `gorm:"type:varchar(10);not null;index"`
	Name string    `gorm:"index;not null"`
	// SKU is auto-generated from type + brand initials + random token when blank
	SKU          string  `gorm:"column:sku;uniqueIndex;not null"`
	Barcode      *string `gorm:"uniqueIndex"`
	Description  *string
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BrandID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImagePath    *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category  *Category      `gorm:"foreignKey:CategoryID"`
	Brand     *Brand         `gorm:"foreignKey:BrandID"`
	Phone     *PhoneSpec     `gorm:"foreignKey:ProductID"`
	Accessory *AccessorySpec `gorm:"foreignKey:ProductID"`
}

// PhoneSpec carries the phone-only attributes of a Product.
type PhoneSpec struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ModelNumber     string    `gorm:"not null"`
	StorageCapacity string    `gorm:"not null"`
	RAM             string    `gorm:"column:ram;not null"`
	Color           string    `gorm:"not null"`
	ScreenSize      string    `gorm:"not null"`
	Processor       string    `gorm:"not null"`
	CameraSpecs     *string
	BatteryCapacity *string
	OperatingSystem string `gorm:"not null"`
	ReleaseYear     *int
	WarrantyPeriod  *string
}

// AccessorySpec carries the accessory-only attributes of a Product.
type AccessorySpec struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AccessoryType  string    `gorm:"type:varchar(20);not null"`
	Material       *string
	Color          *string
	Specifications *string
	WarrantyPeriod *string
}
