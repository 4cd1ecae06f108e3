package dto

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	GoogleID string `json:"google_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

type UpdatePasswordRequest struct {
	UserID          int64  `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AddressRequest struct {
	UserID    int64  `json:"-"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type BecomeSellerRequest struct {
	UserID              int64  `json:"-"`
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
}

type AdminUpdateUserRequest struct {
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
