// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// VendorLocationSample is one historical GPS ping, persisted by the location
// worker and consumed by the admin analytics (heatmap, clusters, trends).
type VendorLocationSample struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the sample.
	VendorID   uuid.UUID `json:"vendor_id"`   // The vendor the ping belongs to.
	Latitude   float64   `json:"latitude"`    // Latitude in signed degrees.
	Longitude  float64   `json:"longitude"`   // Longitude in signed degrees.
	RecordedAt time.Time `json:"recorded_at"` // When the ping was accepted by the broker.
}
