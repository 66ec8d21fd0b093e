// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"kakilima/config"
	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	vendorRepo   repository.VendorRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	VendorRepo   repository.VendorRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		vendorRepo:   params.VendorRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterBuyer creates a new buyer account.
func (srv *userService) RegisterBuyer(ctx context.Context, input usecase.RegisterBuyerInput) (*usecase.RegisterOutput, error) {
	user, err := srv.createUser(ctx, input.Name, input.Email, input.Password, input.Phone, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}

	return &usecase.RegisterOutput{User: user}, nil
}

// RegisterVendor creates a vendor account together with its stall.
func (srv *userService) RegisterVendor(ctx context.Context, input usecase.RegisterVendorInput) (*usecase.RegisterOutput, error) {
	if strings.TrimSpace(input.StoreName) == "" {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("store name is required")
	}

	user, err := srv.createUser(ctx, input.Name, input.Email, input.Password, input.Phone, entity.RoleVendor)
	if err != nil {
		return nil, err
	}

	vendor := &entity.Vendor{
		OwnerUserID: user.ID,
		StoreName:   input.StoreName,
		Description: input.Description,
		Status:      entity.VendorStatusInactive,
	}
	if err := srv.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, errors.Wrap(err, "create vendor")
	}

	srv.log(ctx).Info("vendor registered",
		slog.String("user_id", user.ID.String()),
		slog.String("vendor_id", vendor.ID.String()),
	)

	return &usecase.RegisterOutput{User: user, Vendor: vendor}, nil
}

func (srv *userService) createUser(ctx context.Context, name, email, password, phone string, role entity.Role) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "find user by email")
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        phone,
		Role:         role,
		IsActive:     true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "create user")
	}

	srv.log(ctx).Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("role", role.String()),
	)

	return user, nil
}

// Login verifies credentials and issues a token pair.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountSuspended
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "generate tokens")
	}

	srv.log(ctx).Info("user logged in", slog.String("user_id", user.ID.String()))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair.
func (srv *userService) RefreshTokens(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("invalid refresh token")
	}

	// Roles are re-derived from the current account state, not the old token.
	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "find user by id")
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountSuspended
	}

	accessToken, newRefreshToken, err := srv.tokenService.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return nil, errors.Wrap(err, "generate tokens")
	}

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetProfile retrieves the user's own profile.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find user by id")
	}

	return user, nil
}

// UpdateProfile applies the provided profile changes.
func (srv *userService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "find user by id")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user")
	}

	return user, nil
}
