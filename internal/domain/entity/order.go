// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending means the order is waiting for the vendor to confirm.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed means the vendor accepted the order and is preparing it.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusCompleted means the order was handed over to the buyer.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled means the order was cancelled by either side.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order represents a buyer's order against a single vendor.
type Order struct {
	ID         uuid.UUID   `json:"id"`          // The Global Unique Identifier (GUID) for the order.
	BuyerID    uuid.UUID   `json:"buyer_id"`    // The buyer who placed the order.
	VendorID   uuid.UUID   `json:"vendor_id"`   // The vendor the order was placed against.
	Status     OrderStatus `json:"status"`      // Current lifecycle state.
	TotalPrice int64       `json:"total_price"` // Total in the smallest currency unit (rupiah).
	Notes      string      `json:"notes"`       // Optional buyer notes ("no chili", pickup hints).
	Items      []OrderItem `json:"items"`       // Line items making up the order.
	CreatedAt  time.Time   `json:"created_at"`  // Timestamp of when the order was placed.
	UpdatedAt  time.Time   `json:"updated_at"`  // Timestamp of the last status change.
}

// OrderItem is a single line of an order, snapshotting quantity and unit price.
type OrderItem struct {
	ID         uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the line item.
	OrderID    uuid.UUID `json:"order_id"`     // The order this line belongs to.
	MenuItemID uuid.UUID `json:"menu_item_id"` // The menu item ordered.
	Quantity   int       `json:"quantity"`     // Number of units ordered.
	UnitPrice  int64     `json:"unit_price"`   // Price per unit at order time (rupiah).
}
