package usecase

import (
	"context"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterDeviceInput defines the data for registering a push device.
type RegisterDeviceInput struct {
	UserID   uuid.UUID `json:"-"`
	FCMToken string    `json:"fcm_token"`
	DeviceID string    `json:"device_id"`
	Platform string    `json:"platform"`
}

// ProximityPushInput describes one favorite-vendor push to fan out.
type ProximityPushInput struct {
	BuyerID        uuid.UUID
	VendorID       uuid.UUID
	StoreName      string
	DistanceMeters float64
}

// DeviceUsecase defines device registration and push delivery operations.
type DeviceUsecase interface {
	RegisterDevice(ctx context.Context, input RegisterDeviceInput) (*entity.UserDevice, error)

	// SendProximityPush notifies all of a buyer's active devices that a
	// followed vendor is nearby. Tokens FCM reports as invalid are
	// deactivated as a side effect.
	SendProximityPush(ctx context.Context, input ProximityPushInput) error
}
