// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a vendor a buyer wants proximity alerts for.
type Favorite struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the favorite.
	BuyerID   uuid.UUID `json:"buyer_id"`   // The buyer who favorited the vendor.
	VendorID  uuid.UUID `json:"vendor_id"`  // The favorited vendor.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the favorite was added.
}
