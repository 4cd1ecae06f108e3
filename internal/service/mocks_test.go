package service

import (
	"context"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo implements repository.UserRepository for testing.
type fakeUserRepo struct {
	users       map[int64]domain.User
	addresses   map[int64][]domain.Address
	sellerSales map[int64]int64
	nextID      int64
	err         error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[int64]domain.User),
		addresses:   make(map[int64][]domain.Address),
		sellerSales: make(map[int64]int64),
		nextID:      1,
	}
}

func (f *fakeUserRepo) AddUser(_ context.Context, data domain.User) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	data.ID = f.nextID
	f.nextID++
	f.users[data.ID] = data
	return data.ID, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return domain.User{}, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUsers(_ context.Context, _ pkgdto.Filter) ([]domain.User, error) {
	var users []domain.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, data domain.User) error {
	stored := f.users[data.ID]
	stored.Name = data.Name
	stored.Email = data.Email
	stored.Role = data.Role
	stored.Avatar = data.Avatar
	stored.Phone = data.Phone
	f.users[data.ID] = stored
	return nil
}

func (f *fakeUserRepo) UpdateUserPassword(_ context.Context, id int64, hashedPassword string) error {
	stored := f.users[id]
	stored.HashedPassword = &hashedPassword
	f.users[id] = stored
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AddAddress(_ context.Context, data domain.Address) error {
	f.addresses[data.UserID] = append(f.addresses[data.UserID], data)
	return nil
}

func (f *fakeUserRepo) GetAddressesByUserID(_ context.Context, userID int64) ([]domain.Address, error) {
	return f.addresses[userID], nil
}

func (f *fakeUserRepo) ClearDefaultAddresses(_ context.Context, userID int64) error {
	for idx := range f.addresses[userID] {
		f.addresses[userID][idx].IsDefault = false
	}
	return nil
}

func (f *fakeUserRepo) AttachSellerProfile(_ context.Context, userID int64, businessName string, businessDescription string) error {
	stored := f.users[userID]
	stored.BusinessName = &businessName
	stored.BusinessDescription = &businessDescription
	f.users[userID] = stored
	return nil
}

func (f *fakeUserRepo) IncrementSellerSales(_ context.Context, sellerID int64, quantity int64) error {
	f.sellerSales[sellerID] += quantity
	return nil
}

// fakeProductRepo implements repository.ProductRepository for testing.
type fakeProductRepo struct {
	products      map[string]domain.Product
	total         int64
	featuredLimit int64
	err           error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]domain.Product)}
}

func (f *fakeProductRepo) addExisting(product domain.Product) string {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	f.products[product.ID.Hex()] = product
	return product.ID.Hex()
}

func (f *fakeProductRepo) AddProduct(_ context.Context, data domain.Product) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	data.ID = primitive.NewObjectID()
	f.products[data.ID.Hex()] = data
	return data.ID, nil
}

func (f *fakeProductRepo) GetProducts(_ context.Context, _ pkgdto.Filter) ([]domain.Product, error) {
	var products []domain.Product
	for _, product := range f.products {
		products = append(products, product)
	}
	return products, nil
}

func (f *fakeProductRepo) CountProducts(_ context.Context, _ pkgdto.Filter) (int64, error) {
	if f.total != 0 {
		return f.total, nil
	}
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id string) (domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) GetTopRatedProducts(_ context.Context, _ int64) ([]domain.Product, error) {
	return f.GetProducts(context.Background(), pkgdto.Filter{})
}

func (f *fakeProductRepo) GetFeaturedProducts(_ context.Context, limit int64) ([]domain.Product, error) {
	f.featuredLimit = limit
	var products []domain.Product
	for _, product := range f.products {
		if product.IsFeatured {
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) GetProductsBySellerID(_ context.Context, sellerID int64) ([]domain.Product, error) {
	var products []domain.Product
	for _, product := range f.products {
		if product.SellerID == sellerID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, data domain.Product) error {
	if _, ok := f.products[data.ID.Hex()]; !ok {
		return errs.ErrProductNotFound
	}
	f.products[data.ID.Hex()] = data
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return errs.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AddReview(_ context.Context, productID string, review domain.Review, rating float64, numReviews int) error {
	product, ok := f.products[productID]
	if !ok {
		return errs.ErrProductNotFound
	}
	product.Reviews = append(product.Reviews, review)
	product.Rating = rating
	product.NumReviews = numReviews
	f.products[productID] = product
	return nil
}

func (f *fakeProductRepo) DecrementProductStock(_ context.Context, id string, quantity int64) error {
	product, ok := f.products[id]
	if !ok {
		return errs.ErrProductNotFound
	}
	if product.Stock < quantity {
		return errs.ErrInsufficientStock
	}
	product.Stock -= quantity
	f.products[id] = product
	return nil
}

func (f *fakeProductRepo) IncrementProductStock(_ context.Context, id string, quantity int64) error {
	product, ok := f.products[id]
	if !ok {
		return errs.ErrProductNotFound
	}
	product.Stock += quantity
	f.products[id] = product
	return nil
}

// fakeOrderRepo implements repository.OrderRepository for testing.
type fakeOrderRepo struct {
	orders      map[int64]domain.Order
	items       map[int64][]domain.OrderItem
	nextID      int64
	addOrderErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[int64]domain.Order),
		items:  make(map[int64][]domain.OrderItem),
		nextID: 1,
	}
}

func (f *fakeOrderRepo) addExisting(order domain.Order, items []domain.OrderItem) int64 {
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	for idx := range items {
		items[idx].OrderID = order.ID
	}
	f.items[order.ID] = items
	return order.ID
}

func (f *fakeOrderRepo) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.OrderRepository) error) error {
	return fn(ctx, f)
}

func (f *fakeOrderRepo) AddOrder(_ context.Context, data domain.Order) (int64, error) {
	if f.addOrderErr != nil {
		return 0, f.addOrderErr
	}
	data.ID = f.nextID
	f.nextID++
	f.orders[data.ID] = data
	return data.ID, nil
}

func (f *fakeOrderRepo) AddOrderItems(_ context.Context, data []domain.OrderItem) error {
	if len(data) == 0 {
		return nil
	}
	f.items[data[0].OrderID] = append(f.items[data[0].OrderID], data...)
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id int64) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetOrderItemsByOrderID(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(_ context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetOrders(_ context.Context, _ pkgdto.Filter) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderToPaid(_ context.Context, data domain.Order) error {
	stored, ok := f.orders[data.ID]
	if !ok {
		return errs.ErrOrderNotFound
	}
	stored.IsPaid = true
	stored.PaidAt = data.PaidAt
	stored.PaymentID = data.PaymentID
	stored.PaymentStatus = data.PaymentStatus
	stored.PaymentUpdateTime = data.PaymentUpdateTime
	stored.PaymentEmail = data.PaymentEmail
	f.orders[data.ID] = stored
	return nil
}

func (f *fakeOrderRepo) UpdateOrderToDelivered(_ context.Context, data domain.Order) error {
	stored, ok := f.orders[data.ID]
	if !ok {
		return errs.ErrOrderNotFound
	}
	stored.IsDelivered = true
	stored.DeliveredAt = data.DeliveredAt
	stored.OrderStatus = data.OrderStatus
	f.orders[data.ID] = stored
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, data domain.Order) error {
	stored, ok := f.orders[data.ID]
	if !ok {
		return errs.ErrOrderNotFound
	}
	stored.OrderStatus = data.OrderStatus
	f.orders[data.ID] = stored
	return nil
}

func (f *fakeOrderRepo) CountOrders(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) SumPaidOrderTotals(_ context.Context) (float64, error) {
	var total float64
	for _, order := range f.orders {
		if order.IsPaid {
			total += order.TotalPrice
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) GetUnpaidGatewayOrdersBefore(_ context.Context, cutoff int64) ([]domain.Order, error) {
	var orders []domain.Order
	for _, order := range f.orders {
		if order.PaymentMethod == domain.PaymentMethodGateway && !order.IsPaid && order.CreatedAt < cutoff {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// fakePaymentGateway implements paymentgateway.PaymentGateway for testing.
type fakePaymentGateway struct {
	token       string
	err         error
	gotOrderRef string
	gotAmount   int64
}

func (f *fakePaymentGateway) CreatePaymentIntent(_ context.Context, orderRef string, amount int64) (string, error) {
	f.gotOrderRef = orderRef
	f.gotAmount = amount
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

// fakeMessageProducer implements MessageProducer for testing.
type fakeMessageProducer struct {
	messages []kafka.Message
	err      error
}

func (f *fakeMessageProducer) WriteMessages(msgs ...kafka.Message) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.messages = append(f.messages, msgs...)
	return len(msgs), nil
}

// fakeImageStore implements imagestore.ImageStore for testing.
type fakeImageStore struct {
	deleted []string
	err     error
}

func (f *fakeImageStore) DeleteImage(_ context.Context, publicID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}
