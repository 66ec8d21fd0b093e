package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"
	"kakilima/internal/usecase"
	"kakilima/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	deviceRepo  repository.DeviceRepository
	pushService service.PushService
	logger      *slog.Logger
}

// DeviceServiceParams holds dependencies for DeviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo  repository.DeviceRepository
	PushService service.PushService
	Logger      *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo:  params.DeviceRepo,
		pushService: params.PushService,
		logger:      params.Logger,
	}
}

func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterDevice registers a device or refreshes its FCM token.
func (srv *deviceService) RegisterDevice(ctx context.Context, input usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	if input.FCMToken == "" || input.DeviceID == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("fcm token and device id are required")
	}

	device := &entity.UserDevice{
		UserID:   input.UserID,
		FCMToken: input.FCMToken,
		DeviceID: input.DeviceID,
		Platform: input.Platform,
		IsActive: true,
	}
	if err := srv.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, errors.Wrap(err, "upsert device")
	}

	srv.log(ctx).Info("device registered",
		slog.String("user_id", input.UserID.String()),
		slog.String("platform", input.Platform),
	)

	return device, nil
}

// SendProximityPush notifies all of a buyer's active devices that a followed
// vendor is nearby.
func (srv *deviceService) SendProximityPush(ctx context.Context, input usecase.ProximityPushInput) error {
	// Push delivery is optional. Without Firebase configured the in-socket
	// alert is the only channel.
	if srv.pushService == nil {
		return nil
	}

	devices, err := srv.deviceRepo.FindActiveByUser(ctx, input.BuyerID)
	if err != nil {
		return errors.Wrap(err, "find active devices")
	}
	if len(devices) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	distanceLabel := util.FormatDistance(input.DistanceMeters / 1000)
	title := input.StoreName + " is nearby!"
	body := fmt.Sprintf("%s is about %s away from you.", input.StoreName, distanceLabel)
	data := map[string]string{
		"type":      "favorite_vendor_nearby",
		"vendor_id": input.VendorID.String(),
	}

	success, failure, invalidTokens, err := srv.pushService.SendBatchNotification(ctx, tokens, title, body, data)
	if err != nil {
		return errors.Wrap(err, "send batch notification")
	}

	srv.log(ctx).Info("proximity push sent",
		slog.String("buyer_id", input.BuyerID.String()),
		slog.String("vendor_id", input.VendorID.String()),
		slog.Int("success", success),
		slog.Int("failure", failure),
	)

	if len(invalidTokens) > 0 {
		if err := srv.deviceRepo.DeactivateTokens(ctx, invalidTokens); err != nil {
			srv.log(ctx).Warn("failed to deactivate invalid tokens", slog.Any("error", err))
		}
	}

	return nil
}
