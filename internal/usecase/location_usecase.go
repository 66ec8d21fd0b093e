package usecase

import (
	"context"
	"time"

	"kakilima/internal/registry"

	"github.com/google/uuid"
)

// RecordPingInput is one GPS ping from a vendor's device.
type RecordPingInput struct {
	VendorID     uuid.UUID
	OwnerUserID  uuid.UUID
	ConnectionID string
	StoreName    string
	Latitude     float64
	Longitude    float64
	Status       string
	Timestamp    time.Time // Zero means "now".
}

// LocationUsecase accepts vendor GPS pings and exposes the live vendor set.
// The realtime broker is its primary caller; accepted pings are broadcast
// first and persisted asynchronously so a slow database never delays fan-out.
type LocationUsecase interface {
	// RecordPing validates and applies one ping. The returned record is the
	// state now visible to buyers. Persistence and event publishing happen
	// in the background after the record is accepted.
	RecordPing(ctx context.Context, input RecordPingInput) (*registry.Record, error)

	// DropConnection evicts every record owned by a closed connection and
	// returns the affected vendor IDs.
	DropConnection(ctx context.Context, connectionID string) []uuid.UUID

	// Snapshot returns all live vendor records in insertion order.
	Snapshot(ctx context.Context) []registry.Record
}
