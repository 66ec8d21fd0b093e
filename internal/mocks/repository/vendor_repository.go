package repository

import (
	"context"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVendorRepository is a mock implementation of repository.VendorRepository.
type MockVendorRepository struct {
	mock.Mock
}

func NewMockVendorRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockVendorRepository {
	m := &MockVendorRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindActive(ctx context.Context) ([]*entity.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context) ([]*entity.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) UpdateLocation(ctx context.Context, vendorID uuid.UUID, lat, lon float64, at time.Time) error {
	args := m.Called(ctx, vendorID, lat, lon, at)
	return args.Error(0)
}

// MockMenuRepository is a mock implementation of repository.MenuRepository.
type MockMenuRepository struct {
	mock.Mock
}

func NewMockMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMenuRepository {
	m := &MockMenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMenuRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
