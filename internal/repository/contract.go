package repository

import (
	"context"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (id int64, err error)
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	GetUserByID(ctx context.Context, id int64) (data domain.User, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error)
	CountUsers(ctx context.Context) (count int64, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	UpdateUserPassword(ctx context.Context, id int64, hashedPassword string) (err error)
	DeleteUser(ctx context.Context, id int64) (err error)
	AddAddress(ctx context.Context, data domain.Address) (err error)
	GetAddressesByUserID(ctx context.Context, userID int64) (data []domain.Address, err error)
	ClearDefaultAddresses(ctx context.Context, userID int64) (err error)
	AttachSellerProfile(ctx context.Context, userID int64, businessName string, businessDescription string) (err error)
	IncrementSellerSales(ctx context.Context, sellerID int64, quantity int64) (err error)
}

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
	GetTopRatedProducts(ctx context.Context, limit int64) (data []domain.Product, err error)
	GetFeaturedProducts(ctx context.Context, limit int64) (data []domain.Product, err error)
	GetProductsBySellerID(ctx context.Context, sellerID int64) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	AddReview(ctx context.Context, productID string, review domain.Review, rating float64, numReviews int) (err error)
	DecrementProductStock(ctx context.Context, id string, quantity int64) (err error)
	IncrementProductStock(ctx context.Context, id string, quantity int64) (err error)
}

type OrderRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error

	AddOrder(ctx context.Context, data domain.Order) (id int64, err error)
	AddOrderItems(ctx context.Context, data []domain.OrderItem) (err error)
	GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error)
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) (data []domain.OrderItem, err error)
	GetOrdersByUserID(ctx context.Context, userID int64) (data []domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error)
	UpdateOrderToPaid(ctx context.Context, data domain.Order) (err error)
	UpdateOrderToDelivered(ctx context.Context, data domain.Order) (err error)
	UpdateOrderStatus(ctx context.Context, data domain.Order) (err error)
	CountOrders(ctx context.Context) (count int64, err error)
	SumPaidOrderTotals(ctx context.Context) (total float64, err error)
	GetUnpaidGatewayOrdersBefore(ctx context.Context, cutoff int64) (data []domain.Order, err error)
}
