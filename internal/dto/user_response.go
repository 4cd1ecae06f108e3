package dto

type SellerInfoResponse struct {
	BusinessName        string  `json:"business_name"`
	BusinessDescription string  `json:"business_description"`
	Rating              float64 `json:"rating"`
	TotalSales          int64   `json:"total_sales"`
}

type AddressResponse struct {
	ID        int64  `json:"id"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

type UserResponse struct {
	ID         int64               `json:"id"`
	ExternalID string              `json:"external_id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       string              `json:"role"`
	Avatar     string              `json:"avatar,omitempty"`
	Phone      string              `json:"phone,omitempty"`
	SellerInfo *SellerInfoResponse `json:"seller_info,omitempty"`
	Addresses  []AddressResponse   `json:"addresses,omitempty"`
}

type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}
