package repository

import (
	"context"

	"kakilima/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// By default Execute runs the callback against the given factory, so tests
// exercise the real transactional flow without a database.
type MockTransactionManager struct {
	mock.Mock
}

func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	args := m.Called()
	return args.Get(0).(repository.OrderRepository)
}

func (m *MockRepositoryFactory) NewVendorRepository() repository.VendorRepository {
	args := m.Called()
	return args.Get(0).(repository.VendorRepository)
}

func (m *MockRepositoryFactory) NewReviewRepository() repository.ReviewRepository {
	args := m.Called()
	return args.Get(0).(repository.ReviewRepository)
}
