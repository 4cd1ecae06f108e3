package dto

type ProductImageResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type ReviewResponse struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

type ProductResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price"`
	DiscountPrice  float64                `json:"discount_price"`
	Category       string                 `json:"category"`
	Brand          string                 `json:"brand"`
	SellerID       int64                  `json:"seller_id"`
	Images         []ProductImageResponse `json:"images"`
	Stock          int64                  `json:"stock"`
	Reviews        []ReviewResponse       `json:"reviews"`
	Rating         float64                `json:"rating"`
	NumReviews     int                    `json:"num_reviews"`
	IsFeatured     bool                   `json:"is_featured"`
	Specifications map[string]string      `json:"specifications"`
	CreatedAt      int64                  `json:"created_at"`
}
