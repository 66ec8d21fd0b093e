package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	mockRepo "kakilima/internal/mocks/repository"
	mockService "kakilima/internal/mocks/service"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// locationServiceFixtures holds all test dependencies for location service tests.
type locationServiceFixtures struct {
	service    usecase.LocationUsecase
	registry   *registry.Registry
	vendorRepo *mockRepo.MockVendorRepository
	publisher  *mockService.MockEventPublisher
}

func createTestLocationService(t *testing.T) locationServiceFixtures {
	reg := registry.New(0)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewLocationService(LocationServiceParams{
		Registry:   reg,
		VendorRepo: vendorRepo,
		Publisher:  publisher,
		Logger:     logger,
	})

	return locationServiceFixtures{
		service:    service,
		registry:   reg,
		vendorRepo: vendorRepo,
		publisher:  publisher,
	}
}

// expectPersist wires the write-behind expectations and returns a wait
// function, since the durable write happens on a background goroutine.
func (fx locationServiceFixtures) expectPersist(t *testing.T) func() {
	persisted := make(chan struct{})
	published := make(chan struct{})

	fx.vendorRepo.On("UpdateLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Once().
		Run(func(mock.Arguments) { close(persisted) })
	fx.publisher.On("PublishLocationEvent", mock.Anything, mock.Anything).
		Return(nil).
		Once().
		Run(func(mock.Arguments) { close(published) })

	return func() {
		for _, ch := range []chan struct{}{persisted, published} {
			select {
			case <-ch:
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for background persist")
			}
		}
	}
}

func TestLocationService_RecordPing_AppliesAndPersists(t *testing.T) {
	fx := createTestLocationService(t)
	wait := fx.expectPersist(t)

	vendorID := uuid.New()
	rec, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID:     vendorID,
		OwnerUserID:  uuid.New(),
		ConnectionID: "conn-1",
		StoreName:    "Bakso Pak Min",
		Latitude:     -6.20876349,
		Longitude:    106.84559912,
		Status:       "ACTIVE",
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusActive, rec.Status)
	assert.InDelta(t, -6.208763, rec.Latitude, 1e-9)
	assert.InDelta(t, 106.845599, rec.Longitude, 1e-9)

	stored, ok := fx.registry.Get(vendorID)
	require.True(t, ok)
	assert.Equal(t, "conn-1", stored.ConnectionID)

	wait()
}

func TestLocationService_RecordPing_RejectsBadCoordinates(t *testing.T) {
	fx := createTestLocationService(t)

	_, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID: uuid.New(),
		Latitude: 91,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinates)

	_, err = fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID:  uuid.New(),
		Longitude: -181,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCoordinates)
}

func TestLocationService_RecordPing_RejectsUnknownStatus(t *testing.T) {
	fx := createTestLocationService(t)

	_, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID: uuid.New(),
		Status:   "NAPPING",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLocationService_RecordPing_EmptyStatusDefaultsToActive(t *testing.T) {
	fx := createTestLocationService(t)
	wait := fx.expectPersist(t)

	rec, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID:     uuid.New(),
		ConnectionID: "conn-1",
		Latitude:     -6.2,
		Longitude:    106.8,
		Timestamp:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VendorStatusActive, rec.Status)

	wait()
}

func TestLocationService_RecordPing_StaleTimestampReturnsVisibleState(t *testing.T) {
	fx := createTestLocationService(t)
	wait := fx.expectPersist(t)

	vendorID := uuid.New()
	now := time.Now()

	first, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID:     vendorID,
		ConnectionID: "conn-1",
		Latitude:     -6.21,
		Longitude:    106.85,
		Timestamp:    now,
	})
	require.NoError(t, err)
	wait()

	// A ping with an older timestamp loses; only the first was persisted.
	rec, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID:     vendorID,
		ConnectionID: "conn-1",
		Latitude:     -6.99,
		Longitude:    106.99,
		Timestamp:    now.Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, first.Latitude, rec.Latitude)
	assert.Equal(t, first.Longitude, rec.Longitude)
}

func TestLocationService_DropConnection_EvictsOnlyThatConnection(t *testing.T) {
	fx := createTestLocationService(t)

	done := make(chan struct{}, 4)
	fx.vendorRepo.On("UpdateLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) { done <- struct{}{} })
	fx.publisher.On("PublishLocationEvent", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(mock.Arguments) { done <- struct{}{} })

	vendorA := uuid.New()
	vendorB := uuid.New()

	_, err := fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID: vendorA, ConnectionID: "conn-1", Latitude: -6.2, Longitude: 106.8, Timestamp: time.Now(),
	})
	require.NoError(t, err)
	_, err = fx.service.RecordPing(context.Background(), usecase.RecordPingInput{
		VendorID: vendorB, ConnectionID: "conn-2", Latitude: -6.3, Longitude: 106.9, Timestamp: time.Now(),
	})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for background persist")
		}
	}

	removed := fx.service.DropConnection(context.Background(), "conn-1")
	assert.Equal(t, []uuid.UUID{vendorA}, removed)

	_, ok := fx.registry.Get(vendorA)
	assert.False(t, ok)
	_, ok = fx.registry.Get(vendorB)
	assert.True(t, ok)

	snapshot := fx.service.Snapshot(context.Background())
	require.Len(t, snapshot, 1)
	assert.Equal(t, vendorB, snapshot[0].VendorID)
}
