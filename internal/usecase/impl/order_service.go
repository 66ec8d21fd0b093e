package impl

import (
	"context"
	"log/slog"

	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager  repository.TransactionManager
	orderRepo  repository.OrderRepository
	vendorRepo repository.VendorRepository
	menuRepo   repository.MenuRepository
	logger     *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	VendorRepo repository.VendorRepository
	MenuRepo   repository.MenuRepository
	Logger     *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:  params.TxManager,
		orderRepo:  params.OrderRepo,
		vendorRepo: params.VendorRepo,
		menuRepo:   params.MenuRepo,
		logger:     params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder creates a PENDING order. Menu prices are read and snapshotted
// inside the same transaction that inserts the order, so a concurrent price
// edit cannot split an order across two price lists.
func (srv *orderService) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("order has no items")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("quantity must be positive")
		}
	}

	vendor, err := srv.vendorRepo.FindByID(ctx, input.VendorID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "find vendor by id")
	}
	if vendor.IsSuspended {
		return nil, domainerrors.ErrVendorNotFound
	}

	menu, err := srv.menuRepo.FindByVendor(ctx, input.VendorID)
	if err != nil {
		return nil, errors.Wrap(err, "find menu by vendor")
	}

	menuByID := make(map[uuid.UUID]*entity.MenuItem, len(menu))
	for _, item := range menu {
		menuByID[item.ID] = item
	}

	order := &entity.Order{
		BuyerID:  input.BuyerID,
		VendorID: input.VendorID,
		Status:   entity.OrderStatusPending,
		Notes:    input.Notes,
	}
	for _, line := range input.Items {
		menuItem, ok := menuByID[line.MenuItemID]
		if !ok {
			return nil, domainerrors.ErrMenuItemNotFound
		}
		if !menuItem.IsAvailable {
			return nil, domainerrors.ErrInvalidInput.WrapMessage("menu item is sold out")
		}

		order.Items = append(order.Items, entity.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   line.Quantity,
			UnitPrice:  menuItem.Price,
		})
		order.TotalPrice += menuItem.Price * int64(line.Quantity)
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	srv.log(ctx).Info("order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("vendor_id", order.VendorID.String()),
		slog.Int64("total_price", order.TotalPrice),
	)

	return order, nil
}

// validTransitions maps each order status to the states it may move to.
var validTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusCompleted, entity.OrderStatusCancelled},
}

// UpdateStatus transitions an order. Vendors drive the forward transitions;
// the buyer may cancel while the order is still PENDING.
func (srv *orderService) UpdateStatus(ctx context.Context, input usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus
	}

	order, err := srv.GetOrder(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range validTransitions[order.Status] {
		if next == input.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domainerrors.ErrInvalidOrderStatus.WrapMessage(
			"cannot move from " + order.Status.String() + " to " + input.Status.String())
	}

	if err := srv.authorizeTransition(ctx, order, input); err != nil {
		return nil, err
	}

	if err := srv.orderRepo.UpdateStatus(ctx, input.OrderID, input.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "update order status")
	}

	order.Status = input.Status

	srv.log(ctx).Info("order status changed",
		slog.String("order_id", order.ID.String()),
		slog.String("status", input.Status.String()),
	)

	return order, nil
}

func (srv *orderService) authorizeTransition(ctx context.Context, order *entity.Order, input usecase.UpdateOrderStatusInput) error {
	// Buyers may only cancel their own pending orders; everything else is
	// the vendor's call.
	if input.ActorID == order.BuyerID {
		if input.Status == entity.OrderStatusCancelled && order.Status == entity.OrderStatusPending {
			return nil
		}

		return domainerrors.ErrForbidden
	}

	vendor, err := srv.vendorRepo.FindByID(ctx, order.VendorID)
	if err != nil {
		return errors.Wrap(err, "find vendor by id")
	}
	if vendor.OwnerUserID != input.ActorID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// GetOrder retrieves a single order with its line items.
func (srv *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "find order by id")
	}

	return order, nil
}

// ListBuyerOrders retrieves all orders placed by a buyer, newest first.
func (srv *orderService) ListBuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "find orders by buyer")
	}

	return orders, nil
}

// ListVendorOrders retrieves all orders against the caller's stall.
func (srv *orderService) ListVendorOrders(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Order, error) {
	vendor, err := srv.vendorRepo.FindByOwner(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "find vendor by owner")
	}

	orders, err := srv.orderRepo.FindByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "find orders by vendor")
	}

	return orders, nil
}
