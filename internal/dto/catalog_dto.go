package dto

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id" validate:"omitempty,uuid"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
}

// ─── Brands ──────────────────────────────────────────────────────────────────

type BrandRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description"`
	LogoPath    *string `json:"logo_path"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

type BrandResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	LogoPath    *string `json:"logo_path"`
	Website     *string `json:"website"`
}

// ─── Branches ────────────────────────────────────────────────────────────────

type BranchRequest struct {
	Name        string  `json:"name"         validate:"required,min=2,max=100"`
	Address     string  `json:"address"      validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=15"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	ManagerID   *string `json:"manager_id"   validate:"omitempty,uuid"`
}

type BranchResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email"`
	ManagerID   *string `json:"manager_id"`
	Active      bool    `json:"active"`
}
