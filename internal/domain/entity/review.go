// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a buyer's rating of a vendor, at most one per buyer and vendor.
type Review struct {
	ID        uuid.UUID  `json:"id"`         // The Global Unique Identifier (GUID) for the review.
	BuyerID   uuid.UUID  `json:"buyer_id"`   // The buyer who wrote the review.
	VendorID  uuid.UUID  `json:"vendor_id"`  // The vendor being reviewed.
	OrderID   *uuid.UUID `json:"order_id"`   // The order this review refers to, if any.
	Rating    int        `json:"rating"`     // Star rating in the range 1..5.
	Comment   string     `json:"comment"`    // Optional free-text comment.
	CreatedAt time.Time  `json:"created_at"` // Timestamp of when the review was written.
	UpdatedAt time.Time  `json:"updated_at"` // Timestamp of the last edit.
}
