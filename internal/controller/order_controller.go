package controller

import (
	"strconv"

	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc, isAdmin echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	e.POST("/orders", c.AddOrder, isLoggedIn)
	e.GET("/orders", c.GetOrders, isLoggedIn, isAdmin)
	e.GET("/orders/myorders", c.GetMyOrders, isLoggedIn)
	e.GET("/orders/stats", c.GetOrderStats, isLoggedIn, isAdmin)
	e.POST("/orders/create-payment-intent", c.CreatePaymentIntent, isLoggedIn)
	e.GET("/orders/:id", c.GetOrderByID, isLoggedIn)
	e.PUT("/orders/:id/pay", c.UpdateOrderToPaid, isLoggedIn)
	e.PUT("/orders/:id/deliver", c.UpdateOrderToDelivered, isLoggedIn, isAdmin)
	e.PUT("/orders/:id/status", c.UpdateOrderStatus, isLoggedIn, isAdmin)
}

func parseOrderID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.ErrOrderNotFound
	}
	return id, nil
}

func (c *OrderController) AddOrder(e echo.Context) error {
	user := middleware.CurrentUser(e)

	payload := dto.OrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
	}

	payload.UserID = user.ID

	resp, err := c.service.AddOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "", resp)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
	}

	resp, err := c.service.GetOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", resp)
}

func (c *OrderController) GetMyOrders(e echo.Context) error {
	user := middleware.CurrentUser(e)

	resp, err := c.service.GetOrdersByUserID(e.Request().Context(), user.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderStats(e echo.Context) error {
	resp, err := c.service.GetOrderStats(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) CreatePaymentIntent(e echo.Context) error {
	payload := dto.PaymentIntentRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CreatePaymentIntent").Msg("")
	}

	resp, err := c.service.CreatePaymentIntent(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderByID(e echo.Context) error {
	user := middleware.CurrentUser(e)

	id, err := parseOrderID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetOrderByID(e.Request().Context(), user.ID, user.Role, id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrderToPaid(e echo.Context) error {
	user := middleware.CurrentUser(e)

	id, err := parseOrderID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.PaymentResultRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderToPaid").Msg("")
	}

	resp, err := c.service.UpdateOrderToPaid(e.Request().Context(), user.ID, user.Role, id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrderToDelivered(e echo.Context) error {
	id, err := parseOrderID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UpdateOrderToDelivered(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrderStatus(e echo.Context) error {
	id, err := parseOrderID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.OrderStatusRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
	}

	resp, err := c.service.UpdateOrderStatus(e.Request().Context(), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
