package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Query      string `form:"q"`
	Type       string `form:"type"     validate:"omitempty,oneof=phone accessory"`
	CategoryID string `form:"category" validate:"omitempty,uuid"`
	BrandID    string `form:"brand"    validate:"omitempty,uuid"`
	Inactive   bool   `form:"inactive"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ProductBase carries the fields shared by phone and accessory creation.
type ProductBase struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
	// SKU is auto-generated when omitted
	SKU          string          `json:"sku"     validate:"omitempty,max=50"`
	Barcode      *string         `json:"barcode" validate:"omitempty,max=50"`
	Description  *string         `json:"description"`
	CategoryID   string          `json:"category_id" validate:"required,uuid"`
	BrandID      string          `json:"brand_id"    validate:"required,uuid"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"min=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"min=0"`
	ImagePath    *string         `json:"image_path"`
}

type CreatePhoneRequest struct {
	ProductBase
	ModelNumber     string  `json:"model_number"     validate:"required"`
	StorageCapacity string  `json:"storage_capacity" validate:"required"`
	RAM             string  `json:"ram"              validate:"required"`
	Color           string  `json:"color"            validate:"required"`
	ScreenSize      string  `json:"screen_size"      validate:"required"`
	Processor       string  `json:"processor"        validate:"required"`
	OperatingSystem string  `json:"operating_system" validate:"required"`
	CameraSpecs     *string `json:"camera_specs"`
	BatteryCapacity *string `json:"battery_capacity"`
	ReleaseYear     *int    `json:"release_year"     validate:"omitempty,min=2000"`
	WarrantyPeriod  *string `json:"warranty_period"`
}

type CreateAccessoryRequest struct {
	ProductBase
	AccessoryType  string  `json:"accessory_type" validate:"required,oneof=case screen_protector charger headphone cable power_bank memory_card other"`
	Material       *string `json:"material"`
	Color          *string `json:"color"`
	Specifications *string `json:"specifications"`
	WarrantyPeriod *string `json:"warranty_period"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name" validate:"omitempty,min=2,max=255"`
	Barcode      *string          `json:"barcode"`
	Description  *string          `json:"description"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,uuid"`
	BrandID      *string          `json:"brand_id"    validate:"omitempty,uuid"`
	CostPrice    *decimal.Decimal `json:"cost_price"    validate:"omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty"`
	ImagePath    *string          `json:"image_path"`
}

type PhoneSpecResponse struct {
	ModelNumber     string  `json:"model_number"`
	StorageCapacity string  `json:"storage_capacity"`
	RAM             string  `json:"ram"`
	Color           string  `json:"color"`
	ScreenSize      string  `json:"screen_size"`
	Processor       string  `json:"processor"`
	OperatingSystem string  `json:"operating_system"`
	CameraSpecs     *string `json:"camera_specs"`
	BatteryCapacity *string `json:"battery_capacity"`
	ReleaseYear     *int    `json:"release_year"`
	WarrantyPeriod  *string `json:"warranty_period"`
}

type AccessorySpecResponse struct {
	AccessoryType  string  `json:"accessory_type"`
	Material       *string `json:"material"`
	Color          *string `json:"color"`
	Specifications *string `json:"specifications"`
	WarrantyPeriod *string `json:"warranty_period"`
}

type ProductResponse struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Name         string                 `json:"name"`
	SKU          string                 `json:"sku"`
	Barcode      *string                `json:"barcode"`
	Description  *string                `json:"description"`
	CategoryID   string                 `json:"category_id"`
	Category     string                 `json:"category,omitempty"`
	BrandID      string                 `json:"brand_id"`
	Brand        string                 `json:"brand,omitempty"`
	CostPrice    decimal.Decimal        `json:"cost_price"`
	SellingPrice decimal.Decimal        `json:"selling_price"`
	ImagePath    *string                `json:"image_path"`
	Active       bool                   `json:"active"`
	Phone        *PhoneSpecResponse     `json:"phone,omitempty"`
	Accessory    *AccessorySpecResponse `json:"accessory,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
