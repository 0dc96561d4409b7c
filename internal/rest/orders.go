package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopmarket/business/orders"
	"shopmarket/domain"
	"shopmarket/pkg/logger"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
	}

	OrdersService interface {
		PlaceOrder(ctx context.Context, customerID uint, input orders.PlaceOrderInput) (domain.Order, error)
		GetOrder(ctx context.Context, orderID uint64, customerID uint, role string) (domain.Order, error)
		ListOrders(ctx context.Context, customerID uint, role string) ([]domain.Order, error)
	}

	OrderLineInput struct {
		ProductID uint64 `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity" validate:"required,gt=0"`
	}

	PlaceOrderRequest struct {
		FullName        string           `json:"full_name"`
		ShippingAddress string           `json:"shipping_address" validate:"required"`
		Items           []OrderLineInput `json:"items" validate:"required,min=1,dive"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
	}
}

func (h *OrdersHandler) PlaceOrder(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	var request PlaceOrderRequest

	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items := make([]orders.OrderLineInput, 0, len(request.Items))
	for _, line := range request.Items {
		items = append(items, orders.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.ordersService.PlaceOrder(c.Request().Context(), customerID, orders.PlaceOrderInput{
		FullName:        request.FullName,
		ShippingAddress: request.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		logger.Error("Failed to place order", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) ListOrders(c echo.Context) error {
	customerID := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)

	allOrders, err := h.ordersService.ListOrders(c.Request().Context(), customerID, role)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(allOrders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	customerID := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)

	order, err := h.ordersService.GetOrder(c.Request().Context(), orderID, customerID, role)
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(errorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
