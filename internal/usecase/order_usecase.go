package usecase

import (
	"context"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	BuyerID  uuid.UUID        `json:"-"`
	VendorID uuid.UUID        `json:"vendor_id"`
	Notes    string           `json:"notes"`
	Items    []OrderItemInput `json:"items"`
}

// UpdateOrderStatusInput defines an order status transition request.
// ActorID is checked against the side allowed to make the transition.
type UpdateOrderStatusInput struct {
	OrderID uuid.UUID          `json:"-"`
	ActorID uuid.UUID          `json:"-"`
	Status  entity.OrderStatus `json:"status"`
}

// OrderUsecase defines the interface for order-related business operations.
type OrderUsecase interface {
	// PlaceOrder creates a PENDING order, snapshotting unit prices from the
	// vendor's current menu inside one transaction.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error)

	// UpdateStatus transitions an order along PENDING -> CONFIRMED ->
	// COMPLETED, or to CANCELLED from any non-terminal state.
	UpdateStatus(ctx context.Context, input UpdateOrderStatusInput) (*entity.Order, error)

	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)
	ListVendorOrders(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Order, error)
}
