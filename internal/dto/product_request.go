package dto

type ProductImageRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ProductRequest supports partial updates: pointer fields left nil keep
// the stored value.
type ProductRequest struct {
	ID             string                `json:"-"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	DiscountPrice  *float64              `json:"discount_price"`
	Category       string                `json:"category"`
	Brand          string                `json:"brand"`
	Stock          *int64                `json:"stock"`
	Images         []ProductImageRequest `json:"images"`
	IsFeatured     *bool                 `json:"is_featured"`
	Specifications map[string]string     `json:"specifications"`
	SellerID       int64                 `json:"seller_id"`
}

type ReviewRequest struct {
	ProductID string `json:"-"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
