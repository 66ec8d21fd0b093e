package repository

import (
	"context"
	"errors"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a device is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines the operations for push notification devices.
type DeviceRepository interface {
	// Upsert registers a device or refreshes its FCM token.
	Upsert(ctx context.Context, device *entity.UserDevice) error

	// FindActiveByUser retrieves all active devices of a user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateTokens marks the given FCM tokens inactive (invalidated by FCM).
	DeactivateTokens(ctx context.Context, tokens []string) error
}
