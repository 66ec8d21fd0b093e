package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/registry"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo   repository.UserRepository
	vendorRepo repository.VendorRepository
	orderRepo  repository.OrderRepository
	reg        *registry.Registry
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	VendorRepo repository.VendorRepository
	OrderRepo  repository.OrderRepository
	Registry   *registry.Registry
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:   params.UserRepo,
		vendorRepo: params.VendorRepo,
		orderRepo:  params.OrderRepo,
		reg:        params.Registry,
		logger:     params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) ListUsers(ctx context.Context, role *entity.Role) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx, role)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (srv *adminService) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	vendors, err := srv.vendorRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list vendors")
	}
	return vendors, nil
}

// SetUserActive flips a user's account between active and suspended.
func (srv *adminService) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return errors.Wrap(err, "find user")
	}

	user.IsActive = active
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "update user")
	}

	srv.log(ctx).Info("user active flag changed",
		slog.String("user_id", userID.String()),
		slog.Bool("active", active),
	)

	return nil
}

// SetVendorSuspended flips a vendor's suspension flag. Suspending a vendor
// also evicts it from the live registry so it disappears from the map at once.
func (srv *adminService) SetVendorSuspended(ctx context.Context, vendorID uuid.UUID, suspended bool) error {
	vendor, err := srv.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domainerrors.ErrVendorNotFound
		}
		return errors.Wrap(err, "find vendor")
	}

	vendor.IsSuspended = suspended
	if err := srv.vendorRepo.Update(ctx, vendor); err != nil {
		return errors.Wrap(err, "update vendor")
	}

	if suspended {
		srv.reg.Remove(vendorID)
	}

	srv.log(ctx).Info("vendor suspension changed",
		slog.String("vendor_id", vendorID.String()),
		slog.Bool("suspended", suspended),
	)

	return nil
}

func (srv *adminService) DailyOrderStats(ctx context.Context, days int) ([]repository.DailyOrderStat, error) {
	if days <= 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("stats window must be positive")
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	stats, err := srv.orderRepo.DailyStats(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "load daily order stats")
	}

	return stats, nil
}
