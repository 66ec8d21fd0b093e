package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"
	mockRepo "kakilima/internal/mocks/repository"
	mockService "kakilima/internal/mocks/service"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	vendorRepo   *mockRepo.MockVendorRepository
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		VendorRepo:   vendorRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		vendorRepo:   vendorRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_RegisterBuyer_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "budi@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "secret123").Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	output, err := fx.service.RegisterBuyer(ctx, usecase.RegisterBuyerInput{
		Name:     "Budi",
		Email:    "Budi@Example.com",
		Password: "secret123",
		Phone:    "+628123456789",
	})
	require.NoError(t, err)
	require.NotNil(t, output.User)
	assert.Nil(t, output.Vendor)
	assert.Equal(t, "budi@example.com", output.User.Email)
	assert.Equal(t, "hashed", output.User.PasswordHash)
	assert.Equal(t, entity.RoleBuyer, output.User.Role)
	assert.True(t, output.User.IsActive)
}

func TestUserService_RegisterBuyer_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "budi@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "budi@example.com"}, nil)

	_, err := fx.service.RegisterBuyer(ctx, usecase.RegisterBuyerInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_RegisterVendor_CreatesStall(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "sate@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "secret123").Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	fx.vendorRepo.On("Create", ctx, mock.MatchedBy(func(vendor *entity.Vendor) bool {
		return vendor.StoreName == "Sate Pak Budi" && vendor.Status == entity.VendorStatusInactive
	})).Return(nil)

	output, err := fx.service.RegisterVendor(ctx, usecase.RegisterVendorInput{
		Name:      "Budi",
		Email:     "sate@example.com",
		Password:  "secret123",
		StoreName: "Sate Pak Budi",
	})
	require.NoError(t, err)
	require.NotNil(t, output.Vendor)
	assert.Equal(t, entity.RoleVendor, output.User.Role)
	assert.Equal(t, output.User.ID, output.Vendor.OwnerUserID)
}

func TestUserService_RegisterVendor_StoreNameRequired(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.RegisterVendor(context.Background(), usecase.RegisterVendorInput{
		Name:     "Budi",
		Email:    "sate@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:           userID,
		Email:        "budi@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleBuyer,
		IsActive:     true,
	}

	fx.userRepo.On("FindByEmail", ctx, "budi@example.com").Return(user, nil)
	fx.hasher.On("Check", "secret123", "hashed").Return(true)
	fx.tokenService.On("GenerateTokens", userID, []string{"buyer"}).
		Return("access-token", "refresh-token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, user, output.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "budi@example.com",
		PasswordHash: "hashed",
		IsActive:     true,
	}

	fx.userRepo.On("FindByEmail", ctx, "budi@example.com").Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_SuspendedAccount(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "budi@example.com",
		PasswordHash: "hashed",
		IsActive:     false,
	}

	fx.userRepo.On("FindByEmail", ctx, "budi@example.com").Return(user, nil)
	fx.hasher.On("Check", "secret123", "hashed").Return(true)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAccountSuspended)
}

func TestUserService_RefreshTokens_RederivesRoles(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("ValidateRefreshToken", "old-refresh").
		Return(&service.Claims{UserID: userID, Type: "refresh"}, nil)

	user := &entity.User{ID: userID, Role: entity.RoleVendor, IsActive: true}
	fx.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	fx.tokenService.On("GenerateTokens", userID, []string{"vendor"}).
		Return("new-access", "new-refresh", nil)

	output, err := fx.service.RefreshTokens(ctx, "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
}

func TestUserService_RefreshTokens_InvalidToken(t *testing.T) {
	fx := createTestUserService(t)

	fx.tokenService.On("ValidateRefreshToken", "garbage").
		Return(nil, assert.AnError)

	_, err := fx.service.RefreshTokens(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUserService_UpdateProfile_PatchesOnlyProvidedFields(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:    userID,
		Name:  "Budi",
		Phone: "+628123456789",
	}

	fx.userRepo.On("FindByID", ctx, userID).Return(user, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	newName := "Budi Santoso"
	updated, err := fx.service.UpdateProfile(ctx, usecase.UpdateProfileInput{
		UserID: userID,
		Name:   &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", updated.Name)
	assert.Equal(t, "+628123456789", updated.Phone)
}
