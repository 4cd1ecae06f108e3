package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	paymentgateway "github.com/alimikegami/marketplace-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"gopkg.in/gomail.v2"
)

const recentOrdersLimit = 10

type OrderServiceImpl struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	paymentGateway paymentgateway.PaymentGateway
	kafkaProducer  MessageProducer
	config         *config.Config
}

func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, paymentGateway paymentgateway.PaymentGateway, kafkaProducer MessageProducer, config *config.Config) OrderService {
	return &OrderServiceImpl{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		paymentGateway: paymentGateway,
		kafkaProducer:  kafkaProducer,
		config:         config,
	}
}

func convertOrderToResponse(order domain.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		PaymentMethod: order.PaymentMethod,
		ItemsPrice:    order.ItemsPrice,
		TaxPrice:      order.TaxPrice,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		ShippingAddress: dto.ShippingAddressResponse{
			Street:  order.ShippingStreet,
			City:    order.ShippingCity,
			State:   order.ShippingState,
			ZipCode: order.ShippingZipCode,
			Country: order.ShippingCountry,
		},
		IsPaid:      order.IsPaid,
		PaidAt:      order.PaidAt,
		IsDelivered: order.IsDelivered,
		DeliveredAt: order.DeliveredAt,
		OrderStatus: order.OrderStatus,
		CreatedAt:   order.CreatedAt,
	}

	if order.UserName != nil {
		resp.UserName = *order.UserName
	}
	if order.UserEmail != nil {
		resp.UserEmail = *order.UserEmail
	}

	if order.PaymentID != nil {
		paymentResult := dto.PaymentResultResponse{ID: *order.PaymentID}
		if order.PaymentStatus != nil {
			paymentResult.Status = *order.PaymentStatus
		}
		if order.PaymentUpdateTime != nil {
			paymentResult.UpdateTime = *order.PaymentUpdateTime
		}
		if order.PaymentEmail != nil {
			paymentResult.EmailAddress = *order.PaymentEmail
		}
		resp.PaymentResult = &paymentResult
	}

	for _, item := range order.OrderItems {
		resp.OrderItems = append(resp.OrderItems, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	return resp
}

func (s *OrderServiceImpl) AddOrder(ctx context.Context, req dto.OrderRequest) (resp dto.OrderResponse, err error) {
	if len(req.OrderItems) == 0 {
		return resp, errs.ErrNoOrderItems
	}

	if req.PaymentMethod != domain.PaymentMethodGateway && req.PaymentMethod != domain.PaymentMethodCOD {
		return resp, errs.ErrClient
	}

	sellerQuantities := make(map[int64]int64)
	for _, item := range req.OrderItems {
		if item.Quantity <= 0 {
			return resp, errs.ErrClient
		}

		product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return resp, err
		}

		sellerQuantities[product.SellerID] += item.Quantity
	}

	// Each decrement is a conditional update, so a mid-cart failure
	// leaves earlier items decremented. Those are rolled back here.
	var decremented []dto.OrderItemRequest
	for _, item := range req.OrderItems {
		if err = s.productRepo.DecrementProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.restoreProductStock(ctx, decremented)
			return resp, err
		}
		decremented = append(decremented, item)
	}

	timestamp := time.Now().Unix()
	order := domain.Order{
		UserID:          req.UserID,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		ShippingStreet:  req.ShippingAddress.Street,
		ShippingCity:    req.ShippingAddress.City,
		ShippingState:   req.ShippingAddress.State,
		ShippingZipCode: req.ShippingAddress.ZipCode,
		ShippingCountry: req.ShippingAddress.Country,
		OrderStatus:     string(domain.OrderStatusProcessing),
		CreatedAt:       timestamp,
		UpdatedAt:       timestamp,
	}

	err = s.orderRepo.HandleTrx(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		orderID, err := repo.AddOrder(ctx, order)
		if err != nil {
			return err
		}

		order.ID = orderID

		orderItems := make([]domain.OrderItem, 0, len(req.OrderItems))
		for _, item := range req.OrderItems {
			orderItems = append(orderItems, domain.OrderItem{
				OrderID:   orderID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Image:     item.Image,
				CreatedAt: timestamp,
				UpdatedAt: timestamp,
			})
		}

		if err := repo.AddOrderItems(ctx, orderItems); err != nil {
			return err
		}

		order.OrderItems = orderItems

		return nil
	})
	if err != nil {
		s.restoreProductStock(ctx, req.OrderItems)
		return resp, err
	}

	// COD sales count at order creation; gateway sales count when the
	// payment confirmation arrives.
	if req.PaymentMethod == domain.PaymentMethodCOD {
		s.creditSellers(ctx, sellerQuantities)
	}

	s.publishOrderEvent(ctx, "order_created", convertOrderToResponse(order))

	return convertOrderToResponse(order), nil
}

func (s *OrderServiceImpl) restoreProductStock(ctx context.Context, items []dto.OrderItemRequest) {
	for _, item := range items {
		if err := s.productRepo.IncrementProductStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "restoreProductStock").Str("productID", item.ProductID).Msg("")
		}
	}
}

func (s *OrderServiceImpl) creditSellers(ctx context.Context, sellerQuantities map[int64]int64) {
	for sellerID, quantity := range sellerQuantities {
		if err := s.userRepo.IncrementSellerSales(ctx, sellerID, quantity); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "creditSellers").Int64("sellerID", sellerID).Msg("")
		}
	}
}

func (s *OrderServiceImpl) publishOrderEvent(ctx context.Context, eventType string, data interface{}) {
	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishOrderEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafka.Message{Value: jsonMsg})
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishOrderEvent").Msgf("failed to write message (attempt %d/%d)", i+1, maxRetries)
		time.Sleep(time.Second * time.Duration(i+1))
	}
}

func (s *OrderServiceImpl) getOrderWithItems(ctx context.Context, id int64) (order domain.Order, err error) {
	order, err = s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(ctx, id)
	if err != nil {
		return
	}

	order.OrderItems = items

	return order, nil
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, actorID int64, actorRole string, id int64) (resp dto.OrderResponse, err error) {
	order, err := s.getOrderWithItems(ctx, id)
	if err != nil {
		return
	}

	if order.UserID != actorID && actorRole != domain.RoleAdmin {
		return resp, errs.ErrForbidden
	}

	return convertOrderToResponse(order), nil
}

func (s *OrderServiceImpl) GetOrdersByUserID(ctx context.Context, userID int64) (resp []dto.OrderResponse, err error) {
	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return
	}

	resp = make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, convertOrderToResponse(order))
	}

	return resp, nil
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 12
	}

	orders, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		return
	}

	records := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		records = append(records, convertOrderToResponse(order))
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}

	resp.Records = records
	resp.Page = filter.Page
	resp.Pages = pages
	resp.Total = total

	return resp, nil
}

func (s *OrderServiceImpl) UpdateOrderToPaid(ctx context.Context, actorID int64, actorRole string, orderID int64, req dto.PaymentResultRequest) (resp dto.OrderResponse, err error) {
	order, err := s.getOrderWithItems(ctx, orderID)
	if err != nil {
		return
	}

	if order.UserID != actorID && actorRole != domain.RoleAdmin {
		return resp, errs.ErrForbidden
	}

	if order.IsPaid {
		return convertOrderToResponse(order), nil
	}

	paidAt := time.Now().Unix()
	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentID = &req.ID
	order.PaymentStatus = &req.Status
	order.PaymentUpdateTime = &req.UpdateTime
	order.PaymentEmail = &req.EmailAddress

	if err = s.orderRepo.UpdateOrderToPaid(ctx, order); err != nil {
		return
	}

	if order.PaymentMethod == domain.PaymentMethodGateway {
		sellerQuantities := make(map[int64]int64)
		for _, item := range order.OrderItems {
			product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderToPaid").Str("productID", item.ProductID).Msg("")
				continue
			}
			sellerQuantities[product.SellerID] += item.Quantity
		}
		s.creditSellers(ctx, sellerQuantities)
	}

	s.sendPaymentReceipt(ctx, order)
	s.publishOrderEvent(ctx, "order_paid", convertOrderToResponse(order))

	return convertOrderToResponse(order), nil
}

func (s *OrderServiceImpl) sendPaymentReceipt(ctx context.Context, order domain.Order) {
	if s.config.SMTPConfig.Host == "" || order.UserEmail == nil {
		return
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", *order.UserEmail)
	message.SetHeader("Subject", fmt.Sprintf("Payment received for order #%d", order.ID))
	message.SetBody("text/plain", fmt.Sprintf("We have received your payment of %.2f for order #%d. Thank you for shopping with us.", order.TotalPrice, order.ID))

	if err := utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "sendPaymentReceipt").Msg("")
	}
}

func (s *OrderServiceImpl) UpdateOrderToDelivered(ctx context.Context, orderID int64) (resp dto.OrderResponse, err error) {
	order, err := s.getOrderWithItems(ctx, orderID)
	if err != nil {
		return
	}

	if order.IsDelivered {
		return convertOrderToResponse(order), nil
	}

	deliveredAt := time.Now().Unix()
	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt
	order.OrderStatus = string(domain.OrderStatusDelivered)

	if err = s.orderRepo.UpdateOrderToDelivered(ctx, order); err != nil {
		return
	}

	return convertOrderToResponse(order), nil
}

func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID int64, req dto.OrderStatusRequest) (resp dto.OrderResponse, err error) {
	next, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return resp, errs.ErrInvalidOrderStatus
	}

	order, err := s.getOrderWithItems(ctx, orderID)
	if err != nil {
		return
	}

	current := domain.OrderStatus(order.OrderStatus)
	if !current.CanTransitionTo(next) {
		return resp, errs.ErrInvalidOrderStatus
	}

	if next == domain.OrderStatusDelivered {
		return s.UpdateOrderToDelivered(ctx, orderID)
	}

	order.OrderStatus = string(next)

	if err = s.orderRepo.UpdateOrderStatus(ctx, order); err != nil {
		return
	}

	return convertOrderToResponse(order), nil
}

func (s *OrderServiceImpl) CreatePaymentIntent(ctx context.Context, req dto.PaymentIntentRequest) (resp dto.PaymentIntentResponse, err error) {
	if req.Amount <= 0 {
		return resp, errs.ErrClient
	}

	orderRef, err := uuid.NewV7()
	if err != nil {
		return resp, fmt.Errorf("error generating payment reference: %v", err)
	}

	amount := int64(math.Round(req.Amount * 100))

	clientSecret, err := s.paymentGateway.CreatePaymentIntent(ctx, orderRef.String(), amount)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreatePaymentIntent").Msg("")
		return resp, fmt.Errorf("%w: %v", errs.ErrPaymentGateway, err)
	}

	resp.ClientSecret = clientSecret

	return resp, nil
}

func (s *OrderServiceImpl) GetOrderStats(ctx context.Context) (resp dto.OrderStatsResponse, err error) {
	totalOrders, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		return
	}

	totalRevenue, err := s.orderRepo.SumPaidOrderTotals(ctx)
	if err != nil {
		return
	}

	recentOrders, err := s.orderRepo.GetOrders(ctx, pkgdto.Filter{Page: 1, Limit: recentOrdersLimit})
	if err != nil {
		return
	}

	resp.TotalOrders = totalOrders
	resp.TotalRevenue = totalRevenue
	resp.RecentOrders = make([]dto.OrderResponse, 0, len(recentOrders))
	for _, order := range recentOrders {
		resp.RecentOrders = append(resp.RecentOrders, convertOrderToResponse(order))
	}

	return resp, nil
}

// ReportStaleUnpaidOrders flags gateway orders whose payment never
// arrived. Confirmations are client-reported, so old unpaid orders are
// the signal an operator has to reconcile against the provider.
func (s *OrderServiceImpl) ReportStaleUnpaidOrders(ctx context.Context) (err error) {
	cutoff := time.Now().Unix() - s.config.StalePaymentAge

	orders, err := s.orderRepo.GetUnpaidGatewayOrdersBefore(ctx, cutoff)
	if err != nil {
		return
	}

	for _, order := range orders {
		log.Ctx(ctx).Warn().Int64("orderID", order.ID).Int64("createdAt", order.CreatedAt).Float64("totalPrice", order.TotalPrice).Msg("unpaid gateway order past payment window")
	}

	if len(orders) > 0 {
		log.Ctx(ctx).Info().Int("count", len(orders)).Msg("stale unpaid order report complete")
	}

	return nil
}
