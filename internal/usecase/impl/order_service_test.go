package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	mockRepo "kakilima/internal/mocks/repository"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service    usecase.OrderUsecase
	txManager  *mockRepo.MockTransactionManager
	orderRepo  *mockRepo.MockOrderRepository
	vendorRepo *mockRepo.MockVendorRepository
	menuRepo   *mockRepo.MockMenuRepository
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	menuRepo := mockRepo.NewMockMenuRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewOrderService(OrderServiceParams{
		TxManager:  txManager,
		OrderRepo:  orderRepo,
		VendorRepo: vendorRepo,
		MenuRepo:   menuRepo,
		Logger:     logger,
	})

	return orderServiceFixtures{
		service:    service,
		txManager:  txManager,
		orderRepo:  orderRepo,
		vendorRepo: vendorRepo,
		menuRepo:   menuRepo,
	}
}

// expectTransaction makes the mocked transaction manager run the callback
// against a factory backed by the test's order repository mock.
func (fx orderServiceFixtures) expectTransaction(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewOrderRepository").Return(fx.orderRepo)

	fx.txManager.On("Execute", mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			fn := args.Get(1).(func(repository.RepositoryFactory) error)
			_ = fn(factory)
		})
}

func TestOrderService_PlaceOrder_SnapshotsPricesAndTotals(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()
	sateID := uuid.New()
	esTehID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.menuRepo.On("FindByVendor", ctx, vendorID).Return([]*entity.MenuItem{
		{ID: sateID, VendorID: vendorID, Name: "Sate Ayam", Price: 25000, IsAvailable: true},
		{ID: esTehID, VendorID: vendorID, Name: "Es Teh", Price: 5000, IsAvailable: true},
	}, nil)

	fx.expectTransaction(t)
	fx.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)

	order, err := fx.service.PlaceOrder(ctx, usecase.PlaceOrderInput{
		BuyerID:  buyerID,
		VendorID: vendorID,
		Items: []usecase.OrderItemInput{
			{MenuItemID: sateID, Quantity: 2},
			{MenuItemID: esTehID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*25000+3*5000), order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.Equal(t, int64(25000), order.Items[0].UnitPrice)
	assert.Equal(t, int64(5000), order.Items[1].UnitPrice)
}

func TestOrderService_PlaceOrder_EmptyOrder(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		BuyerID:  uuid.New(),
		VendorID: uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestOrderService_PlaceOrder_SoldOutItem(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	vendorID := uuid.New()
	itemID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.menuRepo.On("FindByVendor", ctx, vendorID).Return([]*entity.MenuItem{
		{ID: itemID, VendorID: vendorID, Price: 25000, IsAvailable: false},
	}, nil)

	_, err := fx.service.PlaceOrder(ctx, usecase.PlaceOrderInput{
		BuyerID:  uuid.New(),
		VendorID: vendorID,
		Items:    []usecase.OrderItemInput{{MenuItemID: itemID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestOrderService_PlaceOrder_SuspendedVendorHidden(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID, IsSuspended: true}, nil)

	_, err := fx.service.PlaceOrder(ctx, usecase.PlaceOrderInput{
		BuyerID:  uuid.New(),
		VendorID: vendorID,
		Items:    []usecase.OrderItemInput{{MenuItemID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrVendorNotFound)
}

func TestOrderService_UpdateStatus_VendorConfirmsPending(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()
	vendorID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		VendorID: vendorID,
		Status:   entity.OrderStatusPending,
	}

	fx.orderRepo.On("FindByID", ctx, orderID).Return(order, nil)
	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID, OwnerUserID: ownerID}, nil)
	fx.orderRepo.On("UpdateStatus", ctx, orderID, entity.OrderStatusConfirmed).Return(nil)

	updated, err := fx.service.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		ActorID: ownerID,
		Status:  entity.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)
}

func TestOrderService_UpdateStatus_BuyerMayOnlyCancelPending(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  buyerID,
		VendorID: uuid.New(),
		Status:   entity.OrderStatusPending,
	}

	fx.orderRepo.On("FindByID", ctx, orderID).Return(order, nil)

	// Buyer confirming their own order is not allowed.
	_, err := fx.service.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		ActorID: buyerID,
		Status:  entity.OrderStatusConfirmed,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	fx.orderRepo.On("UpdateStatus", ctx, orderID, entity.OrderStatusCancelled).Return(nil)

	updated, err := fx.service.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		ActorID: buyerID,
		Status:  entity.OrderStatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
}

func TestOrderService_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		VendorID: uuid.New(),
		Status:   entity.OrderStatusCompleted,
	}

	fx.orderRepo.On("FindByID", ctx, orderID).Return(order, nil)

	_, err := fx.service.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		ActorID: uuid.New(),
		Status:  entity.OrderStatusCancelled,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrderStatus)
}

func TestOrderService_UpdateStatus_StrangerForbidden(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()
	vendorID := uuid.New()

	order := &entity.Order{
		ID:       orderID,
		BuyerID:  uuid.New(),
		VendorID: vendorID,
		Status:   entity.OrderStatusPending,
	}

	fx.orderRepo.On("FindByID", ctx, orderID).Return(order, nil)
	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID, OwnerUserID: uuid.New()}, nil)

	_, err := fx.service.UpdateStatus(ctx, usecase.UpdateOrderStatusInput{
		OrderID: orderID,
		ActorID: uuid.New(),
		Status:  entity.OrderStatusConfirmed,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
