package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Kitchen",
	"Sports",
	"Beauty",
	"Toys",
	"Automotive",
	"Health",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type ProductImage struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

type Review struct {
	UserID    int64  `bson:"user_id"`
	Name      string `bson:"name"`
	Rating    int    `bson:"rating"`
	Comment   string `bson:"comment"`
	CreatedAt int64  `bson:"created_at"`
}

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	DiscountPrice  float64            `bson:"discount_price"`
	Category       string             `bson:"category"`
	Brand          string             `bson:"brand"`
	SellerID       int64              `bson:"seller_id"`
	Images         []ProductImage     `bson:"images"`
	Stock          int64              `bson:"stock"`
	Reviews        []Review           `bson:"reviews"`
	Rating         float64            `bson:"rating"`
	NumReviews     int                `bson:"num_reviews"`
	IsFeatured     bool               `bson:"is_featured"`
	Specifications map[string]string  `bson:"specifications"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}
