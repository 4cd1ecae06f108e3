package domain

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                  int64    `db:"id"`
	ExternalID          string   `db:"external_id"`
	Name                string   `db:"name"`
	Email               string   `db:"email"`
	HashedPassword      *string  `db:"hashed_password"`
	GoogleID            *string  `db:"google_id"`
	Role                string   `db:"role"`
	Avatar              string   `db:"avatar"`
	Phone               string   `db:"phone"`
	BusinessName        *string  `db:"business_name"`
	BusinessDescription *string  `db:"business_description"`
	SellerRating        *float64 `db:"seller_rating"`
	TotalSales          *int64   `db:"total_sales"`
	CreatedAt           int64    `db:"created_at"`
	UpdatedAt           int64    `db:"updated_at"`
	DeletedAt           *int64   `db:"deleted_at"`
	Addresses           []Address
}

// HasSellerProfile reports whether the seller profile attachment is
// present. Seller sales accounting keys off this, not off the role.
func (u User) HasSellerProfile() bool {
	return u.BusinessName != nil
}

type Address struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Street    string `db:"street"`
	City      string `db:"city"`
	State     string `db:"state"`
	ZipCode   string `db:"zip_code"`
	Country   string `db:"country"`
	IsDefault bool   `db:"is_default"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}
