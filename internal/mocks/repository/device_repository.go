package repository

import (
	"context"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDeviceRepository is a mock implementation of repository.DeviceRepository.
type MockDeviceRepository struct {
	mock.Mock
}

func NewMockDeviceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDeviceRepository) Upsert(ctx context.Context, device *entity.UserDevice) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserDevice), args.Error(1)
}

func (m *MockDeviceRepository) DeactivateTokens(ctx context.Context, tokens []string) error {
	args := m.Called(ctx, tokens)
	return args.Error(0)
}

// MockLocationHistoryRepository is a mock implementation of repository.LocationHistoryRepository.
type MockLocationHistoryRepository struct {
	mock.Mock
}

func NewMockLocationHistoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocationHistoryRepository {
	m := &MockLocationHistoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocationHistoryRepository) Create(ctx context.Context, sample *entity.VendorLocationSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockLocationHistoryRepository) FindSince(ctx context.Context, since time.Time) ([]*entity.VendorLocationSample, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.VendorLocationSample), args.Error(1)
}

func (m *MockLocationHistoryRepository) FindByVendorSince(ctx context.Context, vendorID uuid.UUID, since time.Time) ([]*entity.VendorLocationSample, error) {
	args := m.Called(ctx, vendorID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.VendorLocationSample), args.Error(1)
}
