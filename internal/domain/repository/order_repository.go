package repository

import (
	"context"
	"errors"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// DailyOrderStat aggregates one day's completed orders for the analytics trend.
type DailyOrderStat struct {
	Day        time.Time `json:"day"`
	OrderCount int64     `json:"order_count"`
	Revenue    int64     `json:"revenue"`
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByBuyer retrieves all orders placed by a buyer, newest first.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)

	// FindByVendor retrieves all orders placed against a vendor, newest first.
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error)

	// Create persists a new order with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus transitions an order to the given status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// DailyStats aggregates completed orders per day over the given window.
	DailyStats(ctx context.Context, from, to time.Time) ([]DailyOrderStat, error)
}
