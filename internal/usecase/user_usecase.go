// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterBuyerInput defines the data required to register a new buyer.
type RegisterBuyerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// RegisterVendorInput defines the data required to register a vendor account
// together with its stall.
type RegisterVendorInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	StoreName   string `json:"store_name"`
	Description string `json:"description"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput defines the mutable profile fields.
type UpdateProfileInput struct {
	UserID uuid.UUID `json:"-"`
	Name   *string   `json:"name,omitempty"`
	Phone  *string   `json:"phone,omitempty"`
	Avatar *string   `json:"avatar,omitempty"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User   *entity.User   `json:"user"`
	Vendor *entity.Vendor `json:"vendor,omitempty"` // Set only for vendor registrations.
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// RefreshOutput returns a fresh token pair.
type RefreshOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterBuyer(ctx context.Context, input RegisterBuyerInput) (*RegisterOutput, error)
	RegisterVendor(ctx context.Context, input RegisterVendorInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)
}
