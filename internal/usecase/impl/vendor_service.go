package impl

import (
	"context"
	"log/slog"

	"kakilima/config"
	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"
	"kakilima/internal/geo"
	"kakilima/internal/proximity"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultNearbyRadiusMeters = 2000.0
	maxNearbyRadiusMeters     = 10000.0
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	vendorRepo    repository.VendorRepository
	menuRepo      repository.MenuRepository
	reviewRepo    repository.ReviewRepository
	reg           *registry.Registry
	qrService     service.QRCodeService
	defaultRadius float64
	maxRadius     float64
	logger        *slog.Logger
}

// VendorServiceParams holds dependencies for VendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	VendorRepo repository.VendorRepository
	MenuRepo   repository.MenuRepository
	ReviewRepo repository.ReviewRepository
	Registry   *registry.Registry
	QRService  service.QRCodeService
	Config     *config.Config
	Logger     *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	defaultRadius := defaultNearbyRadiusMeters
	maxRadius := maxNearbyRadiusMeters
	if params.Config != nil && params.Config.Proximity != nil {
		if params.Config.Proximity.DefaultNearbyRadiusMeters > 0 {
			defaultRadius = params.Config.Proximity.DefaultNearbyRadiusMeters
		}
		if params.Config.Proximity.MaxNearbyRadiusMeters > 0 {
			maxRadius = params.Config.Proximity.MaxNearbyRadiusMeters
		}
	}

	return &vendorService{
		vendorRepo:    params.VendorRepo,
		menuRepo:      params.MenuRepo,
		reviewRepo:    params.ReviewRepo,
		reg:           params.Registry,
		qrService:     params.QRService,
		defaultRadius: defaultRadius,
		maxRadius:     maxRadius,
		logger:        params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetVendor aggregates the stall page: vendor, menu, rating, live position.
func (srv *vendorService) GetVendor(ctx context.Context, vendorID uuid.UUID) (*usecase.VendorDetailOutput, error) {
	vendor, err := srv.findVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	menu, err := srv.menuRepo.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "find menu by vendor")
	}

	avg, hasRating, err := srv.reviewRepo.AverageRating(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "average rating")
	}

	out := &usecase.VendorDetailOutput{
		Vendor:        vendor,
		Menu:          menu,
		AverageRating: avg,
		HasRating:     hasRating,
	}

	if rec, ok := srv.reg.Get(vendorID); ok {
		out.IsLive = true
		out.LiveLatitude = rec.Latitude
		out.LiveLongitude = rec.Longitude
	}

	return out, nil
}

// GetOwnVendor retrieves the stall owned by the calling account.
func (srv *vendorService) GetOwnVendor(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindByOwner(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "find vendor by owner")
	}

	return vendor, nil
}

// UpdateVendor applies the provided stall changes.
func (srv *vendorService) UpdateVendor(ctx context.Context, input usecase.UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := srv.GetOwnVendor(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		if *input.StoreName == "" {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("store name cannot be empty")
		}
		vendor.StoreName = *input.StoreName
	}
	if input.Description != nil {
		vendor.Description = *input.Description
	}

	if err := srv.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, errors.Wrap(err, "update vendor")
	}

	return vendor, nil
}

// SetStatus flips the vendor's operating state. Going INACTIVE also drops
// the vendor from the live registry so buyers stop seeing it immediately.
func (srv *vendorService) SetStatus(ctx context.Context, ownerUserID uuid.UUID, status entity.VendorStatus) (*entity.Vendor, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("unknown vendor status")
	}

	vendor, err := srv.GetOwnVendor(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	vendor.Status = status
	if err := srv.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, errors.Wrap(err, "update vendor status")
	}

	if status == entity.VendorStatusInactive {
		srv.reg.Remove(vendor.ID)
	}

	srv.log(ctx).Info("vendor status changed",
		slog.String("vendor_id", vendor.ID.String()),
		slog.String("status", status.String()),
	)

	return vendor, nil
}

// NearbyVendors returns ACTIVE vendors within the radius. Stored coordinates
// are overlaid with the live registry position when one exists, so a vendor
// mid-route is reported where it actually is.
func (srv *vendorService) NearbyVendors(ctx context.Context, input usecase.NearbyVendorsInput) ([]proximity.AnnotatedVendor, error) {
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	radius := input.RadiusMeters
	if radius <= 0 {
		radius = srv.defaultRadius
	}
	if radius > srv.maxRadius {
		radius = srv.maxRadius
	}

	vendors, err := srv.vendorRepo.FindActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "find active vendors")
	}

	records := make([]registry.Record, 0, len(vendors))
	for _, vendor := range vendors {
		rec := registry.Record{
			VendorID:    vendor.ID,
			OwnerUserID: vendor.OwnerUserID,
			StoreName:   vendor.StoreName,
			Status:      vendor.Status,
			Latitude:    vendor.Latitude,
			Longitude:   vendor.Longitude,
		}
		if vendor.LastLocationTime != nil {
			rec.UpdatedAt = *vendor.LastLocationTime
		}

		if live, ok := srv.reg.Get(vendor.ID); ok {
			rec.Latitude = live.Latitude
			rec.Longitude = live.Longitude
			rec.Status = live.Status
			rec.UpdatedAt = live.UpdatedAt
		}

		records = append(records, rec)
	}

	viewer := geo.Point{Lat: input.Latitude, Lon: input.Longitude}

	return proximity.AnnotateWithin(viewer, records, radius), nil
}

// UpsertMenuItem creates or updates a menu item on the caller's own stall.
func (srv *vendorService) UpsertMenuItem(ctx context.Context, input usecase.UpsertMenuItemInput) (*entity.MenuItem, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("item name is required")
	}
	if input.Price < 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("price cannot be negative")
	}

	vendor, err := srv.GetOwnVendor(ctx, input.OwnerUserID)
	if err != nil {
		return nil, err
	}

	if input.ItemID == nil {
		item := &entity.MenuItem{
			VendorID:    vendor.ID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			IsAvailable: input.IsAvailable,
		}
		if err := srv.menuRepo.Create(ctx, item); err != nil {
			return nil, errors.Wrap(err, "create menu item")
		}

		return item, nil
	}

	item, err := srv.menuRepo.FindByID(ctx, *input.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, domainerrors.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "find menu item")
	}
	if item.VendorID != vendor.ID {
		return nil, domainerrors.ErrForbidden
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Price = input.Price
	item.IsAvailable = input.IsAvailable

	if err := srv.menuRepo.Update(ctx, item); err != nil {
		return nil, errors.Wrap(err, "update menu item")
	}

	return item, nil
}

// DeleteMenuItem removes a menu item from the caller's own stall.
func (srv *vendorService) DeleteMenuItem(ctx context.Context, ownerUserID, itemID uuid.UUID) error {
	vendor, err := srv.GetOwnVendor(ctx, ownerUserID)
	if err != nil {
		return err
	}

	item, err := srv.menuRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return domainerrors.ErrMenuItemNotFound
		}

		return errors.Wrap(err, "find menu item")
	}
	if item.VendorID != vendor.ID {
		return domainerrors.ErrForbidden
	}

	return srv.menuRepo.Delete(ctx, itemID)
}

// StallQR renders the PNG QR code buyers scan at the stall.
func (srv *vendorService) StallQR(ctx context.Context, vendorID uuid.UUID) ([]byte, error) {
	if _, err := srv.findVendor(ctx, vendorID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateStallQR(vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "generate stall qr")
	}

	return png, nil
}

func (srv *vendorService) findVendor(ctx context.Context, vendorID uuid.UUID) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "find vendor by id")
	}

	return vendor, nil
}
