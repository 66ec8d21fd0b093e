package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	mockRepo "kakilima/internal/mocks/repository"
	mockService "kakilima/internal/mocks/service"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// deviceServiceFixtures holds all test dependencies for device service tests.
type deviceServiceFixtures struct {
	service     usecase.DeviceUsecase
	deviceRepo  *mockRepo.MockDeviceRepository
	pushService *mockService.MockPushService
}

func createTestDeviceService(t *testing.T) deviceServiceFixtures {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	pushService := mockService.NewMockPushService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewDeviceService(DeviceServiceParams{
		DeviceRepo:  deviceRepo,
		PushService: pushService,
		Logger:      logger,
	})

	return deviceServiceFixtures{
		service:     service,
		deviceRepo:  deviceRepo,
		pushService: pushService,
	}
}

func TestDeviceService_RegisterDevice_Success(t *testing.T) {
	fx := createTestDeviceService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.deviceRepo.On("Upsert", ctx, mock.MatchedBy(func(device *entity.UserDevice) bool {
		return device.UserID == userID && device.FCMToken == "fcm-token" && device.IsActive
	})).Return(nil)

	device, err := fx.service.RegisterDevice(ctx, usecase.RegisterDeviceInput{
		UserID:   userID,
		FCMToken: "fcm-token",
		DeviceID: "device-123",
		Platform: "android",
	})
	require.NoError(t, err)
	assert.Equal(t, "device-123", device.DeviceID)
	assert.True(t, device.IsActive)
}

func TestDeviceService_RegisterDevice_MissingToken(t *testing.T) {
	fx := createTestDeviceService(t)

	_, err := fx.service.RegisterDevice(context.Background(), usecase.RegisterDeviceInput{
		UserID:   uuid.New(),
		DeviceID: "device-123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestDeviceService_SendProximityPush_DeactivatesInvalidTokens(t *testing.T) {
	fx := createTestDeviceService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()

	fx.deviceRepo.On("FindActiveByUser", ctx, buyerID).Return([]*entity.UserDevice{
		{FCMToken: "token-1"},
		{FCMToken: "token-2"},
	}, nil)
	fx.pushService.On("SendBatchNotification", ctx, []string{"token-1", "token-2"},
		mock.Anything, mock.Anything, mock.Anything).
		Return(1, 1, []string{"token-2"}, nil)
	fx.deviceRepo.On("DeactivateTokens", ctx, []string{"token-2"}).Return(nil)

	err := fx.service.SendProximityPush(ctx, usecase.ProximityPushInput{
		BuyerID:        buyerID,
		VendorID:       vendorID,
		StoreName:      "Bakso Pak Min",
		DistanceMeters: 420,
	})
	assert.NoError(t, err)
}

func TestDeviceService_SendProximityPush_NoDevicesIsNoOp(t *testing.T) {
	fx := createTestDeviceService(t)
	ctx := context.Background()
	buyerID := uuid.New()

	fx.deviceRepo.On("FindActiveByUser", ctx, buyerID).
		Return([]*entity.UserDevice{}, nil)

	err := fx.service.SendProximityPush(ctx, usecase.ProximityPushInput{
		BuyerID:        buyerID,
		VendorID:       uuid.New(),
		StoreName:      "Bakso Pak Min",
		DistanceMeters: 420,
	})
	assert.NoError(t, err)
}

func TestDeviceService_SendProximityPush_NoPushServiceIsNoOp(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Firebase unconfigured: the service is built with a nil push sender and
	// must stay silent instead of touching the repo or panicking.
	service := NewDeviceService(DeviceServiceParams{
		DeviceRepo:  deviceRepo,
		PushService: nil,
		Logger:      logger,
	})

	require.NotPanics(t, func() {
		err := service.SendProximityPush(context.Background(), usecase.ProximityPushInput{
			BuyerID:        uuid.New(),
			VendorID:       uuid.New(),
			StoreName:      "Bakso Pak Min",
			DistanceMeters: 420,
		})
		assert.NoError(t, err)
	})
}
