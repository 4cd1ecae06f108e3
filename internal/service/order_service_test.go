package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService(orderRepo *fakeOrderRepo, productRepo *fakeProductRepo, userRepo *fakeUserRepo, gateway *fakePaymentGateway, producer *fakeMessageProducer) OrderService {
	return CreateOrderService(orderRepo, productRepo, userRepo, gateway, producer, &config.Config{StalePaymentAge: 86400})
}

func seedSeller(userRepo *fakeUserRepo, id int64) {
	businessName := "Acme Goods"
	userRepo.users[id] = domain.User{
		ID:           id,
		Name:         "Seller",
		Email:        "seller@example.com",
		Role:         domain.RoleSeller,
		BusinessName: &businessName,
	}
}

func TestAddOrder_EmptyCart(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	svc := newTestOrderService(orderRepo, productRepo, newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodCOD,
	})

	require.ErrorIs(t, err, errs.ErrNoOrderItems)
	assert.Empty(t, orderRepo.orders)
}

func TestAddOrder_UnknownPaymentMethod(t *testing.T) {
	svc := newTestOrderService(newFakeOrderRepo(), newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
		UserID:        1,
		PaymentMethod: "Cheque",
		OrderItems:    []dto.OrderItemRequest{{ProductID: "abc", Quantity: 1}},
	})

	require.ErrorIs(t, err, errs.ErrClient)
}

func TestAddOrder_DecrementsStock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	userRepo := newFakeUserRepo()
	seedSeller(userRepo, 7)

	productID := productRepo.addExisting(domain.Product{Name: "Keyboard", Stock: 10, SellerID: 7})

	producer := &fakeMessageProducer{}
	svc := newTestOrderService(orderRepo, productRepo, userRepo, &fakePaymentGateway{}, producer)

	resp, err := svc.AddOrder(context.Background(), dto.OrderRequest{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodGateway,
		OrderItems:    []dto.OrderItemRequest{{ProductID: productID, Name: "Keyboard", Quantity: 3, Price: 49.99}},
		TotalPrice:    149.97,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderStatusProcessing), resp.OrderStatus)
	assert.Len(t, resp.OrderItems, 1)

	product, _ := productRepo.GetProductByID(context.Background(), productID)
	assert.Equal(t, int64(7), product.Stock)

	// Gateway sales are not credited until payment confirmation.
	assert.Empty(t, userRepo.sellerSales)

	require.Len(t, producer.messages, 1)
	var event dto.KafkaMessage
	require.NoError(t, json.Unmarshal(producer.messages[0].Value, &event))
	assert.Equal(t, "order_created", event.EventType)
}

func TestAddOrder_InsufficientStockRestoresEarlierItems(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	userRepo := newFakeUserRepo()
	seedSeller(userRepo, 7)

	firstID := productRepo.addExisting(domain.Product{Name: "Keyboard", Stock: 5, SellerID: 7})
	secondID := productRepo.addExisting(domain.Product{Name: "Mouse", Stock: 1, SellerID: 7})

	svc := newTestOrderService(orderRepo, productRepo, userRepo, &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodCOD,
		OrderItems: []dto.OrderItemRequest{
			{ProductID: firstID, Name: "Keyboard", Quantity: 2, Price: 49.99},
			{ProductID: secondID, Name: "Mouse", Quantity: 3, Price: 19.99},
		},
	})

	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	first, _ := productRepo.GetProductByID(context.Background(), firstID)
	second, _ := productRepo.GetProductByID(context.Background(), secondID)
	assert.Equal(t, int64(5), first.Stock)
	assert.Equal(t, int64(1), second.Stock)

	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, userRepo.sellerSales)
}

func TestAddOrder_CODCreditsSellerAtCreation(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	userRepo := newFakeUserRepo()
	seedSeller(userRepo, 7)

	productID := productRepo.addExisting(domain.Product{Name: "Keyboard", Stock: 10, SellerID: 7})

	svc := newTestOrderService(orderRepo, productRepo, userRepo, &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.AddOrder(context.Background(), dto.OrderRequest{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodCOD,
		OrderItems:    []dto.OrderItemRequest{{ProductID: productID, Name: "Keyboard", Quantity: 4, Price: 49.99}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), userRepo.sellerSales[7])
}

func TestUpdateOrderToPaid_RecordsPaymentAndCreditsSeller(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	userRepo := newFakeUserRepo()
	seedSeller(userRepo, 7)

	productID := productRepo.addExisting(domain.Product{Name: "Keyboard", Stock: 10, SellerID: 7})

	orderID := orderRepo.addExisting(domain.Order{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodGateway,
		TotalPrice:    99.98,
		OrderStatus:   string(domain.OrderStatusProcessing),
	}, []domain.OrderItem{{ProductID: productID, Name: "Keyboard", Quantity: 2, Price: 49.99}})

	producer := &fakeMessageProducer{}
	svc := newTestOrderService(orderRepo, productRepo, userRepo, &fakePaymentGateway{}, producer)

	resp, err := svc.UpdateOrderToPaid(context.Background(), 1, domain.RoleUser, orderID, dto.PaymentResultRequest{
		ID:           "pay_123",
		Status:       "settlement",
		UpdateTime:   "2024-06-01T10:00:00Z",
		EmailAddress: "buyer@example.com",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	require.NotNil(t, resp.PaymentResult)
	assert.Equal(t, "pay_123", resp.PaymentResult.ID)
	assert.Equal(t, "settlement", resp.PaymentResult.Status)

	assert.Equal(t, int64(2), userRepo.sellerSales[7])

	require.Len(t, producer.messages, 1)
	var event dto.KafkaMessage
	require.NoError(t, json.Unmarshal(producer.messages[0].Value, &event))
	assert.Equal(t, "order_paid", event.EventType)
}

func TestUpdateOrderToPaid_NonOwnerForbidden(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, PaymentMethod: domain.PaymentMethodGateway, OrderStatus: string(domain.OrderStatusProcessing)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.UpdateOrderToPaid(context.Background(), 2, domain.RoleUser, orderID, dto.PaymentResultRequest{ID: "pay_123"})

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestUpdateOrderToPaid_AlreadyPaidDoesNotCreditTwice(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := newFakeProductRepo()
	userRepo := newFakeUserRepo()
	seedSeller(userRepo, 7)

	productID := productRepo.addExisting(domain.Product{Name: "Keyboard", Stock: 10, SellerID: 7})

	paidAt := int64(1717200000)
	orderID := orderRepo.addExisting(domain.Order{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodGateway,
		IsPaid:        true,
		PaidAt:        &paidAt,
		OrderStatus:   string(domain.OrderStatusProcessing),
	}, []domain.OrderItem{{ProductID: productID, Quantity: 2}})

	svc := newTestOrderService(orderRepo, productRepo, userRepo, &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.UpdateOrderToPaid(context.Background(), 1, domain.RoleUser, orderID, dto.PaymentResultRequest{ID: "pay_again"})

	require.NoError(t, err)
	assert.True(t, resp.IsPaid)
	assert.Empty(t, userRepo.sellerSales)
}

func TestUpdateOrderToDelivered_SetsFlagAndStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusShipped)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.UpdateOrderToDelivered(context.Background(), orderID)

	require.NoError(t, err)
	assert.True(t, resp.IsDelivered)
	assert.NotNil(t, resp.DeliveredAt)
	assert.Equal(t, string(domain.OrderStatusDelivered), resp.OrderStatus)
}

func TestUpdateOrderToDelivered_Idempotent(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	deliveredAt := int64(1717200000)
	orderID := orderRepo.addExisting(domain.Order{
		UserID:      1,
		IsDelivered: true,
		DeliveredAt: &deliveredAt,
		OrderStatus: string(domain.OrderStatusDelivered),
	}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.UpdateOrderToDelivered(context.Background(), orderID)

	require.NoError(t, err)
	assert.True(t, resp.IsDelivered)
	require.NotNil(t, resp.DeliveredAt)
	assert.Equal(t, deliveredAt, *resp.DeliveredAt)
}

func TestUpdateOrderStatus_Forward(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusProcessing)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.UpdateOrderStatus(context.Background(), orderID, dto.OrderStatusRequest{Status: "Shipped"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.OrderStatusShipped), resp.OrderStatus)
}

func TestUpdateOrderStatus_RejectsBackwardTransition(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusDelivered)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.UpdateOrderStatus(context.Background(), orderID, dto.OrderStatusRequest{Status: "Shipped"})

	require.ErrorIs(t, err, errs.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusProcessing)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.UpdateOrderStatus(context.Background(), orderID, dto.OrderStatusRequest{Status: "Cancelled"})

	require.ErrorIs(t, err, errs.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_DeliveredSetsDeliveryFlags(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusShipped)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.UpdateOrderStatus(context.Background(), orderID, dto.OrderStatusRequest{Status: "Delivered"})

	require.NoError(t, err)
	assert.True(t, resp.IsDelivered)
	assert.Equal(t, string(domain.OrderStatusDelivered), resp.OrderStatus)
}

func TestGetOrderByID_NonOwnerForbidden(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderID := orderRepo.addExisting(domain.Order{UserID: 1, OrderStatus: string(domain.OrderStatusProcessing)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.GetOrderByID(context.Background(), 2, domain.RoleUser, orderID)
	require.ErrorIs(t, err, errs.ErrForbidden)

	resp, err := svc.GetOrderByID(context.Background(), 2, domain.RoleAdmin, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, resp.ID)
}

func TestCreatePaymentIntent_ConvertsToSmallestUnit(t *testing.T) {
	gateway := &fakePaymentGateway{token: "snap-token-123"}
	svc := newTestOrderService(newFakeOrderRepo(), newFakeProductRepo(), newFakeUserRepo(), gateway, &fakeMessageProducer{})

	resp, err := svc.CreatePaymentIntent(context.Background(), dto.PaymentIntentRequest{Amount: 12.34})

	require.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.ClientSecret)
	assert.Equal(t, int64(1234), gateway.gotAmount)
	assert.NotEmpty(t, gateway.gotOrderRef)
}

func TestCreatePaymentIntent_NonPositiveAmount(t *testing.T) {
	svc := newTestOrderService(newFakeOrderRepo(), newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	_, err := svc.CreatePaymentIntent(context.Background(), dto.PaymentIntentRequest{Amount: 0})

	require.ErrorIs(t, err, errs.ErrClient)
}

func TestCreatePaymentIntent_GatewayError(t *testing.T) {
	gateway := &fakePaymentGateway{err: assert.AnError}
	svc := newTestOrderService(newFakeOrderRepo(), newFakeProductRepo(), newFakeUserRepo(), gateway, &fakeMessageProducer{})

	_, err := svc.CreatePaymentIntent(context.Background(), dto.PaymentIntentRequest{Amount: 10})

	require.ErrorIs(t, err, errs.ErrPaymentGateway)
}

func TestGetOrderStats(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	paidAt := int64(1717200000)
	orderRepo.addExisting(domain.Order{UserID: 1, TotalPrice: 100, IsPaid: true, PaidAt: &paidAt, OrderStatus: string(domain.OrderStatusProcessing)}, nil)
	orderRepo.addExisting(domain.Order{UserID: 2, TotalPrice: 50, OrderStatus: string(domain.OrderStatusProcessing)}, nil)
	orderRepo.addExisting(domain.Order{UserID: 3, TotalPrice: 25.5, IsPaid: true, PaidAt: &paidAt, OrderStatus: string(domain.OrderStatusProcessing)}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	resp, err := svc.GetOrderStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalOrders)
	assert.InDelta(t, 125.5, resp.TotalRevenue, 0.001)
	assert.Len(t, resp.RecentOrders, 3)
}

func TestReportStaleUnpaidOrders(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.addExisting(domain.Order{
		UserID:        1,
		PaymentMethod: domain.PaymentMethodGateway,
		CreatedAt:     1,
		OrderStatus:   string(domain.OrderStatusProcessing),
	}, nil)

	svc := newTestOrderService(orderRepo, newFakeProductRepo(), newFakeUserRepo(), &fakePaymentGateway{}, &fakeMessageProducer{})

	require.NoError(t, svc.ReportStaleUnpaidOrders(context.Background()))
}
