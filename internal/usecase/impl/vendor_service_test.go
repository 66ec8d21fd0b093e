package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	mockRepo "kakilima/internal/mocks/repository"
	mockService "kakilima/internal/mocks/service"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// vendorServiceFixtures holds all test dependencies for vendor service tests.
type vendorServiceFixtures struct {
	service    usecase.VendorUsecase
	registry   *registry.Registry
	vendorRepo *mockRepo.MockVendorRepository
	menuRepo   *mockRepo.MockMenuRepository
	reviewRepo *mockRepo.MockReviewRepository
	qrService  *mockService.MockQRCodeService
}

func createTestVendorService(t *testing.T) vendorServiceFixtures {
	reg := registry.New(0)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	menuRepo := mockRepo.NewMockMenuRepository(t)
	reviewRepo := mockRepo.NewMockReviewRepository(t)
	qrService := mockService.NewMockQRCodeService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewVendorService(VendorServiceParams{
		VendorRepo: vendorRepo,
		MenuRepo:   menuRepo,
		ReviewRepo: reviewRepo,
		Registry:   reg,
		QRService:  qrService,
		Logger:     logger,
	})

	return vendorServiceFixtures{
		service:    service,
		registry:   reg,
		vendorRepo: vendorRepo,
		menuRepo:   menuRepo,
		reviewRepo: reviewRepo,
		qrService:  qrService,
	}
}

func TestVendorService_GetVendor_OverlaysLivePosition(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	vendor := &entity.Vendor{
		ID:        vendorID,
		StoreName: "Bakso Pak Min",
		Status:    entity.VendorStatusActive,
		Latitude:  -6.3,
		Longitude: 106.9,
	}

	fx.vendorRepo.On("FindByID", ctx, vendorID).Return(vendor, nil)
	fx.menuRepo.On("FindByVendor", ctx, vendorID).Return([]*entity.MenuItem{}, nil)
	fx.reviewRepo.On("AverageRating", ctx, vendorID).Return(4.5, true, nil)

	fx.registry.Upsert(registry.Record{
		VendorID:  vendorID,
		Status:    entity.VendorStatusActive,
		Latitude:  -6.21,
		Longitude: 106.85,
		UpdatedAt: time.Now(),
	})

	out, err := fx.service.GetVendor(ctx, vendorID)
	require.NoError(t, err)
	assert.True(t, out.IsLive)
	assert.InDelta(t, -6.21, out.LiveLatitude, 1e-9)
	assert.InDelta(t, 106.85, out.LiveLongitude, 1e-9)
	assert.InDelta(t, 4.5, out.AverageRating, 1e-9)
	assert.True(t, out.HasRating)
}

func TestVendorService_GetVendor_NotFound(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).Return(nil, repository.ErrVendorNotFound)

	_, err := fx.service.GetVendor(ctx, vendorID)
	assert.ErrorIs(t, err, domainerrors.ErrVendorNotFound)
}

func TestVendorService_SetStatus_InactiveEvictsFromRegistry(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	vendorID := uuid.New()

	vendor := &entity.Vendor{
		ID:          vendorID,
		OwnerUserID: ownerID,
		Status:      entity.VendorStatusActive,
	}

	fx.registry.Upsert(registry.Record{VendorID: vendorID, UpdatedAt: time.Now()})

	fx.vendorRepo.On("FindByOwner", ctx, ownerID).Return(vendor, nil)
	fx.vendorRepo.On("Update", ctx, mock.MatchedBy(func(v *entity.Vendor) bool {
		return v.Status == entity.VendorStatusInactive
	})).Return(nil)

	updated, err := fx.service.SetStatus(ctx, ownerID, entity.VendorStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusInactive, updated.Status)

	_, ok := fx.registry.Get(vendorID)
	assert.False(t, ok)
}

func TestVendorService_SetStatus_RejectsUnknownStatus(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.SetStatus(context.Background(), uuid.New(), "NAPPING")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVendorService_NearbyVendors_LivePositionWinsOverStored(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	// Stored position is far away; the live registry says the vendor is
	// right next to the viewer.
	stored := &entity.Vendor{
		ID:        vendorID,
		StoreName: "Bakso Pak Min",
		Status:    entity.VendorStatusActive,
		Latitude:  -7.0,
		Longitude: 107.5,
	}
	fx.vendorRepo.On("FindActive", ctx).Return([]*entity.Vendor{stored}, nil)

	fx.registry.Upsert(registry.Record{
		VendorID:  vendorID,
		Status:    entity.VendorStatusActive,
		Latitude:  -6.2089,
		Longitude: 106.8456,
		UpdatedAt: time.Now(),
	})

	results, err := fx.service.NearbyVendors(ctx, usecase.NearbyVendorsInput{
		Latitude:     -6.2088,
		Longitude:    106.8456,
		RadiusMeters: 500,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, vendorID, results[0].VendorID)
	assert.Less(t, results[0].DistanceMeters, 100.0)
}

func TestVendorService_NearbyVendors_ExcludesOutOfRadius(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()

	far := &entity.Vendor{
		ID:        uuid.New(),
		Status:    entity.VendorStatusActive,
		Latitude:  -6.3,
		Longitude: 106.95,
	}
	fx.vendorRepo.On("FindActive", ctx).Return([]*entity.Vendor{far}, nil)

	results, err := fx.service.NearbyVendors(ctx, usecase.NearbyVendorsInput{
		Latitude:     -6.2088,
		Longitude:    106.8456,
		RadiusMeters: 1000,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestVendorService_NearbyVendors_RejectsBadCoordinates(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.NearbyVendors(context.Background(), usecase.NearbyVendorsInput{
		Latitude:  123,
		Longitude: 106.8,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinates)
}

func TestVendorService_UpsertMenuItem_CreateAndUpdate(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	vendorID := uuid.New()

	vendor := &entity.Vendor{ID: vendorID, OwnerUserID: ownerID}
	fx.vendorRepo.On("FindByOwner", ctx, ownerID).Return(vendor, nil)
	fx.menuRepo.On("Create", ctx, mock.MatchedBy(func(item *entity.MenuItem) bool {
		return item.VendorID == vendorID && item.Name == "Sate Ayam"
	})).Return(nil)

	created, err := fx.service.UpsertMenuItem(ctx, usecase.UpsertMenuItemInput{
		OwnerUserID: ownerID,
		Name:        "Sate Ayam",
		Price:       25000,
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, vendorID, created.VendorID)

	itemID := uuid.New()
	existing := &entity.MenuItem{ID: itemID, VendorID: vendorID, Name: "Sate Ayam", Price: 25000}
	fx.menuRepo.On("FindByID", ctx, itemID).Return(existing, nil)
	fx.menuRepo.On("Update", ctx, mock.AnythingOfType("*entity.MenuItem")).Return(nil)

	updated, err := fx.service.UpsertMenuItem(ctx, usecase.UpsertMenuItemInput{
		OwnerUserID: ownerID,
		ItemID:      &itemID,
		Name:        "Sate Ayam",
		Price:       27000,
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(27000), updated.Price)
}

func TestVendorService_UpsertMenuItem_ForbiddenOnForeignItem(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	itemID := uuid.New()

	vendor := &entity.Vendor{ID: uuid.New(), OwnerUserID: ownerID}
	foreign := &entity.MenuItem{ID: itemID, VendorID: uuid.New()}

	fx.vendorRepo.On("FindByOwner", ctx, ownerID).Return(vendor, nil)
	fx.menuRepo.On("FindByID", ctx, itemID).Return(foreign, nil)

	_, err := fx.service.UpsertMenuItem(ctx, usecase.UpsertMenuItemInput{
		OwnerUserID: ownerID,
		ItemID:      &itemID,
		Name:        "Sate Ayam",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestVendorService_StallQR_Success(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.qrService.On("GenerateStallQR", vendorID).Return([]byte{0x89, 0x50}, nil)

	png, err := fx.service.StallQR(ctx, vendorID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
