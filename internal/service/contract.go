package service

import (
	"context"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/segmentio/kafka-go"
)

// MessageProducer is satisfied by *kafka.Conn.
type MessageProducer interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (resp dto.AuthResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.AuthResponse, err error)
	GetProfile(ctx context.Context, userID int64) (resp dto.UserResponse, err error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (resp dto.UserResponse, err error)
	UpdatePassword(ctx context.Context, req dto.UpdatePasswordRequest) (err error)
	AddAddress(ctx context.Context, req dto.AddressRequest) (err error)
	BecomeSeller(ctx context.Context, req dto.BecomeSellerRequest) (resp dto.UserResponse, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error)
	GetUserByID(ctx context.Context, id int64) (resp dto.UserResponse, err error)
	UpdateUserByAdmin(ctx context.Context, req dto.AdminUpdateUserRequest) (err error)
	DeleteUser(ctx context.Context, id int64) (err error)
}

type ProductService interface {
	AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error)
	GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error)
	GetTopRatedProducts(ctx context.Context) (resp []dto.ProductResponse, err error)
	GetFeaturedProducts(ctx context.Context) (resp []dto.ProductResponse, err error)
	GetProductsBySellerID(ctx context.Context, sellerID int64) (resp []dto.ProductResponse, err error)
	UpdateProduct(ctx context.Context, actorID int64, actorRole string, req dto.ProductRequest) (resp dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, actorID int64, actorRole string, id string) (err error)
	AddReview(ctx context.Context, user domain.User, req dto.ReviewRequest) (err error)
}

type OrderService interface {
	AddOrder(ctx context.Context, req dto.OrderRequest) (resp dto.OrderResponse, err error)
	GetOrderByID(ctx context.Context, actorID int64, actorRole string, id int64) (resp dto.OrderResponse, err error)
	GetOrdersByUserID(ctx context.Context, userID int64) (resp []dto.OrderResponse, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error)
	UpdateOrderToPaid(ctx context.Context, actorID int64, actorRole string, orderID int64, req dto.PaymentResultRequest) (resp dto.OrderResponse, err error)
	UpdateOrderToDelivered(ctx context.Context, orderID int64) (resp dto.OrderResponse, err error)
	UpdateOrderStatus(ctx context.Context, orderID int64, req dto.OrderStatusRequest) (resp dto.OrderResponse, err error)
	CreatePaymentIntent(ctx context.Context, req dto.PaymentIntentRequest) (resp dto.PaymentIntentResponse, err error)
	GetOrderStats(ctx context.Context) (resp dto.OrderStatsResponse, err error)
	ReportStaleUnpaidOrders(ctx context.Context) (err error)
}
