package proximity

import (
	"testing"

	"kakilima/internal/geo"
	"kakilima/internal/registry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_AlertsOncePerEntry(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(500)
	vendorID := uuid.New()

	// Approach, enter, leave, re-enter: exactly two alerts.
	samples := []float64{600, 400, 600, 300}
	alerts := 0
	for _, d := range samples {
		if tracker.Observe(vendorID, d) {
			alerts++
		}
	}

	assert.Equal(t, 2, alerts)
}

func TestTracker_NoRepeatWhileInside(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(500)
	vendorID := uuid.New()

	assert.True(t, tracker.Observe(vendorID, 450))
	assert.False(t, tracker.Observe(vendorID, 300))
	assert.False(t, tracker.Observe(vendorID, 499))
}

func TestTracker_BoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(500)
	vendorID := uuid.New()

	assert.True(t, tracker.Observe(vendorID, 500))
}

func TestTracker_IndependentVendors(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(500)
	first := uuid.New()
	second := uuid.New()

	assert.True(t, tracker.Observe(first, 100))
	assert.True(t, tracker.Observe(second, 100))
	assert.False(t, tracker.Observe(first, 100))
}

func TestTracker_ForgetReArms(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(500)
	vendorID := uuid.New()

	require.True(t, tracker.Observe(vendorID, 200))
	tracker.Forget(vendorID)
	assert.True(t, tracker.Observe(vendorID, 200))
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	viewer := geo.Point{Lat: -6.2088, Lon: 106.8456}
	rec := registry.Record{
		VendorID:  uuid.New(),
		Latitude:  -6.2146,
		Longitude: 106.8451,
	}

	got := Annotate(viewer, rec)

	assert.InDelta(t, 645, got.DistanceMeters, 50)
	assert.Equal(t, got.DistanceMeters/1000, got.DistanceKm)
	assert.NotEmpty(t, got.DistanceLabel)
	assert.GreaterOrEqual(t, got.ETAMinutes, 1)
}

func TestAnnotateWithin(t *testing.T) {
	t.Parallel()

	viewer := geo.Point{Lat: 0, Lon: 0}
	near := registry.Record{VendorID: uuid.New(), Latitude: 0.001, Longitude: 0}
	far := registry.Record{VendorID: uuid.New(), Latitude: 0.05, Longitude: 0}

	got := AnnotateWithin(viewer, []registry.Record{near, far}, 500)

	require.Len(t, got, 1)
	assert.Equal(t, near.VendorID, got[0].VendorID)
	assert.Equal(t, "111m", got[0].DistanceLabel)
}
