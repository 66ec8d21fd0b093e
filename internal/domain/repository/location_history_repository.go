package repository

import (
	"context"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// LocationHistoryRepository stores historical GPS pings for analytics.
// Rows are written by the location worker, never by the realtime path.
type LocationHistoryRepository interface {
	// Create persists one location sample.
	Create(ctx context.Context, sample *entity.VendorLocationSample) error

	// FindSince retrieves all samples recorded after the given time.
	FindSince(ctx context.Context, since time.Time) ([]*entity.VendorLocationSample, error)

	// FindByVendorSince retrieves a vendor's samples recorded after the given time.
	FindByVendorSince(ctx context.Context, vendorID uuid.UUID, since time.Time) ([]*entity.VendorLocationSample, error)
}
