package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Username    string  `json:"username"  validate:"required,min=3"`
	Password    string  `json:"password"  validate:"required,min=6"`
	FullName    string  `json:"full_name" validate:"required"`
	Email       *string `json:"email"     validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	Role        string  `json:"role"      validate:"required,oneof=admin staff"`
	BranchID    *string `json:"branch_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"     validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	Role        string  `json:"role"      validate:"omitempty,oneof=admin staff"`
	BranchID    *string `json:"branch_id" validate:"omitempty,uuid"`
	Password    string  `json:"password"  validate:"omitempty,min=6"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        string  `json:"role"`
	BranchID    *string `json:"branch_id"`
	Active      bool    `json:"active"`
}
