// Package usecase provides testify mocks for the usecase interfaces
// consumed by the delivery layer.
package usecase

import (
	"context"

	"kakilima/internal/domain/entity"
	"kakilima/internal/proximity"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLocationUsecase is a mock implementation of usecase.LocationUsecase.
type MockLocationUsecase struct {
	mock.Mock
}

func NewMockLocationUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocationUsecase {
	m := &MockLocationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLocationUsecase) RecordPing(ctx context.Context, input usecase.RecordPingInput) (*registry.Record, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*registry.Record), args.Error(1)
}

func (m *MockLocationUsecase) DropConnection(ctx context.Context, connectionID string) []uuid.UUID {
	args := m.Called(ctx, connectionID)
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]uuid.UUID)
}

func (m *MockLocationUsecase) Snapshot(ctx context.Context) []registry.Record {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).([]registry.Record)
}

// MockVendorUsecase is a mock implementation of usecase.VendorUsecase.
type MockVendorUsecase struct {
	mock.Mock
}

func NewMockVendorUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVendorUsecase {
	m := &MockVendorUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockVendorUsecase) GetVendor(ctx context.Context, vendorID uuid.UUID) (*usecase.VendorDetailOutput, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.VendorDetailOutput), args.Error(1)
}

func (m *MockVendorUsecase) GetOwnVendor(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorUsecase) UpdateVendor(ctx context.Context, input usecase.UpdateVendorInput) (*entity.Vendor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorUsecase) SetStatus(ctx context.Context, ownerUserID uuid.UUID, status entity.VendorStatus) (*entity.Vendor, error) {
	args := m.Called(ctx, ownerUserID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorUsecase) NearbyVendors(ctx context.Context, input usecase.NearbyVendorsInput) ([]proximity.AnnotatedVendor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]proximity.AnnotatedVendor), args.Error(1)
}

func (m *MockVendorUsecase) UpsertMenuItem(ctx context.Context, input usecase.UpsertMenuItemInput) (*entity.MenuItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.MenuItem), args.Error(1)
}

func (m *MockVendorUsecase) DeleteMenuItem(ctx context.Context, ownerUserID, itemID uuid.UUID) error {
	args := m.Called(ctx, ownerUserID, itemID)

	return args.Error(0)
}

func (m *MockVendorUsecase) StallQR(ctx context.Context, vendorID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockDeviceUsecase is a mock implementation of usecase.DeviceUsecase.
type MockDeviceUsecase struct {
	mock.Mock
}

func NewMockDeviceUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceUsecase {
	m := &MockDeviceUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDeviceUsecase) RegisterDevice(ctx context.Context, input usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserDevice), args.Error(1)
}

func (m *MockDeviceUsecase) SendProximityPush(ctx context.Context, input usecase.ProximityPushInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

// MockOrderUsecase is a mock implementation of usecase.OrderUsecase.
type MockOrderUsecase struct {
	mock.Mock
}

func NewMockOrderUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderUsecase) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) UpdateStatus(ctx context.Context, input usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *MockOrderUsecase) ListVendorOrders(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

// MockFavoriteUsecase is a mock implementation of usecase.FavoriteUsecase.
type MockFavoriteUsecase struct {
	mock.Mock
}

func NewMockFavoriteUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFavoriteUsecase {
	m := &MockFavoriteUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFavoriteUsecase) AddFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error {
	args := m.Called(ctx, buyerID, vendorID)

	return args.Error(0)
}

func (m *MockFavoriteUsecase) RemoveFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error {
	args := m.Called(ctx, buyerID, vendorID)

	return args.Error(0)
}

func (m *MockFavoriteUsecase) ListFavoriteVendorIDs(ctx context.Context, buyerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFavoriteUsecase) ListFavoriteVendors(ctx context.Context, buyerID uuid.UUID) ([]*entity.Vendor, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Vendor), args.Error(1)
}
