// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// VendorStatus represents the operating state a vendor broadcasts to buyers.
type VendorStatus string

const (
	// VendorStatusActive means the vendor is open and selling.
	VendorStatusActive VendorStatus = "ACTIVE"
	// VendorStatusResting means the vendor is on a break but still on the street.
	VendorStatusResting VendorStatus = "RESTING"
	// VendorStatusInactive means the vendor is closed for the day.
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// String returns the string representation of the VendorStatus.
func (s VendorStatus) String() string {
	return string(s)
}

// IsValid checks if the VendorStatus is a valid value.
func (s VendorStatus) IsValid() bool {
	switch s {
	case VendorStatusActive, VendorStatusResting, VendorStatusInactive:
		return true
	default:
		return false
	}
}

// Vendor represents a street-food stall owned by a user with the vendor role.
type Vendor struct {
	ID               uuid.UUID    `json:"id"`                 // The Global Unique Identifier (GUID) for the vendor.
	OwnerUserID      uuid.UUID    `json:"owner_user_id"`      // The ID of the user account that owns this stall.
	StoreName        string       `json:"store_name"`         // The stall's public display name.
	Description      string       `json:"description"`        // A short description of what the stall sells.
	Status           VendorStatus `json:"status"`             // Current operating state.
	IsSuspended      bool         `json:"is_suspended"`       // Suspended vendors are hidden from buyer queries.
	Latitude         float64      `json:"latitude"`           // Last durably stored latitude in signed degrees.
	Longitude        float64      `json:"longitude"`          // Last durably stored longitude in signed degrees.
	LastLocationTime *time.Time   `json:"last_location_time"` // When the stored coordinates were last refreshed; nil if never.
	CreatedAt        time.Time    `json:"created_at"`         // Timestamp of when this vendor was registered.
	UpdatedAt        time.Time    `json:"updated_at"`         // Timestamp of the last modification.
}

// MenuItem represents a single dish or drink on a vendor's menu.
type MenuItem struct {
	ID          uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the menu item.
	VendorID    uuid.UUID `json:"vendor_id"`    // The vendor this item belongs to.
	Name        string    `json:"name"`         // Dish name.
	Description string    `json:"description"`  // Optional dish description.
	Price       int64     `json:"price"`        // Price in the smallest currency unit (rupiah).
	IsAvailable bool      `json:"is_available"` // Sold-out items are flipped to false.
	CreatedAt   time.Time `json:"created_at"`   // Timestamp of when this item was added.
	UpdatedAt   time.Time `json:"updated_at"`   // Timestamp of the last modification.
}
