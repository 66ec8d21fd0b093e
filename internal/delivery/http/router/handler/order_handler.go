package handler

import (
	"log/slog"
	"net/http"

	"kakilima/internal/delivery/http/response"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// PlaceOrder creates a new order for the authenticated buyer.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	input.BuyerID = userID

	order, err := h.uc.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// UpdateStatus transitions an order on behalf of the authenticated actor.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	var input usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	input.OrderID = orderID
	input.ActorID = userID

	order, err := h.uc.UpdateStatus(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// GetOrder returns one order by ID.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

// ListBuyerOrders returns the authenticated buyer's order history.
func (h *OrderHandler) ListBuyerOrders(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	orders, err := h.uc.ListBuyerOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// ListVendorOrders returns the authenticated vendor's incoming orders.
func (h *OrderHandler) ListVendorOrders(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	orders, err := h.uc.ListVendorOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}
