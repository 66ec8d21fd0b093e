package impl

import (
	"context"
	"log/slog"
	"time"

	"kakilima/config"
	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"
	"kakilima/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const persistTimeout = 5 * time.Second

// locationService implements the LocationUsecase interface. It owns the live
// registry and the write-behind path to durable storage.
type locationService struct {
	reg        *registry.Registry
	vendorRepo repository.VendorRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// LocationServiceParams holds dependencies for LocationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	Registry   *registry.Registry
	VendorRepo repository.VendorRepository
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewLocationService is the constructor for locationService.
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		reg:        params.Registry,
		vendorRepo: params.VendorRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RecordPing validates and applies one GPS ping. The registry write is
// synchronous; the durable store and the event bus are updated in the
// background so the broadcast path never waits on them.
func (srv *locationService) RecordPing(ctx context.Context, input usecase.RecordPingInput) (*registry.Record, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	status := entity.VendorStatus(input.Status)
	if input.Status == "" {
		status = entity.VendorStatusActive
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("unknown vendor status")
	}

	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	rec := registry.Record{
		VendorID:     input.VendorID,
		OwnerUserID:  input.OwnerUserID,
		ConnectionID: input.ConnectionID,
		StoreName:    input.StoreName,
		Status:       status,
		Latitude:     util.RoundCoordinate(input.Latitude),
		Longitude:    util.RoundCoordinate(input.Longitude),
		UpdatedAt:    ts,
	}

	if !srv.reg.Upsert(rec) {
		// A newer ping already won; report the state buyers actually see.
		if current, ok := srv.reg.Get(input.VendorID); ok {
			return &current, nil
		}

		return &rec, nil
	}

	requestID := deliverycontext.GetRequestIDFromContext(ctx)
	go srv.persistPing(requestID, rec)

	return &rec, nil
}

// persistPing writes the accepted ping to the durable store and the event
// bus. Failures are logged, never surfaced: buyers already saw the update.
func (srv *locationService) persistPing(requestID string, rec registry.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := srv.vendorRepo.UpdateLocation(ctx, rec.VendorID, rec.Latitude, rec.Longitude, rec.UpdatedAt); err != nil {
		srv.logger.Error("vendor location persist failed",
			slog.String("vendor_id", rec.VendorID.String()),
			slog.Any("error", err),
		)
	}

	event := &service.LocationEvent{
		RequestID: requestID,
		VendorID:  rec.VendorID,
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Status:    rec.Status.String(),
		Timestamp: rec.UpdatedAt,
	}
	if err := srv.publisher.PublishLocationEvent(ctx, event); err != nil {
		srv.logger.Error("location event publish failed",
			slog.String("vendor_id", rec.VendorID.String()),
			slog.Any("error", err),
		)
	}
}

// DropConnection evicts every record owned by a closed connection.
func (srv *locationService) DropConnection(ctx context.Context, connectionID string) []uuid.UUID {
	removed := srv.reg.RemoveAllForConnection(connectionID)
	if len(removed) > 0 {
		srv.log(ctx).Info("connection records evicted",
			slog.String("connection_id", connectionID),
			slog.Int("count", len(removed)),
		)
	}

	return removed
}

// Snapshot returns all live vendor records in insertion order.
func (srv *locationService) Snapshot(_ context.Context) []registry.Record {
	return srv.reg.Snapshot()
}
