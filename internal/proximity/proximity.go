// Package proximity annotates vendor positions with viewer-relative distance
// and drives the "favorite vendor is nearby" alerting cycle.
package proximity

import (
	"sync"

	"kakilima/internal/geo"
	"kakilima/internal/registry"
	"kakilima/internal/util"

	"github.com/google/uuid"
)

// AnnotatedVendor is a live vendor record enriched with distance and ETA
// relative to a specific viewer position.
type AnnotatedVendor struct {
	registry.Record

	DistanceMeters float64 `json:"distance_meters"`
	DistanceKm     float64 `json:"distance_km"`
	DistanceLabel  string  `json:"distance_label"`
	ETAMinutes     int     `json:"eta_minutes"`
}

// Annotate computes the viewer-relative fields for a single record.
func Annotate(viewer geo.Point, rec registry.Record) AnnotatedVendor {
	meters := geo.Distance(viewer.Lat, viewer.Lon, rec.Latitude, rec.Longitude)
	km := meters / 1000

	return AnnotatedVendor{
		Record:         rec,
		DistanceMeters: meters,
		DistanceKm:     km,
		DistanceLabel:  util.FormatDistance(km),
		ETAMinutes:     util.EstimateETA(km, util.DefaultTravelSpeedKmh),
	}
}

// AnnotateWithin filters records to those within radiusMeters of the viewer
// and annotates each. Input order is preserved.
func AnnotateWithin(viewer geo.Point, records []registry.Record, radiusMeters float64) []AnnotatedVendor {
	result := make([]AnnotatedVendor, 0, len(records))
	for _, rec := range geo.WithinRadius(viewer, records, radiusMeters) {
		result = append(result, Annotate(viewer, rec))
	}

	return result
}

// Tracker decides when a buyer should be alerted about a followed vendor.
// Each buyer session owns one tracker. An alert fires once per entry into the
// radius; leaving the radius re-arms the alert so the next entry fires again.
type Tracker struct {
	radiusMeters float64

	mu       sync.Mutex
	notified map[uuid.UUID]struct{}
}

// NewTracker creates a tracker with the given alert radius in meters.
func NewTracker(radiusMeters float64) *Tracker {
	return &Tracker{
		radiusMeters: radiusMeters,
		notified:     make(map[uuid.UUID]struct{}),
	}
}

// Observe records a distance sample for a followed vendor and reports whether
// an alert should fire now.
func (t *Tracker) Observe(vendorID uuid.UUID, distanceMeters float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, alreadyNotified := t.notified[vendorID]

	if distanceMeters > t.radiusMeters {
		// Outside the radius re-arms the vendor for the next entry.
		delete(t.notified, vendorID)
		return false
	}

	if alreadyNotified {
		return false
	}

	t.notified[vendorID] = struct{}{}

	return true
}

// Forget drops a vendor's alert state, typically on unfollow.
func (t *Tracker) Forget(vendorID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.notified, vendorID)
}

// Reset clears all alert state.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.notified = make(map[uuid.UUID]struct{})
}

// RadiusMeters returns the configured alert radius.
func (t *Tracker) RadiusMeters() float64 {
	return t.radiusMeters
}
