package repository

import (
	"context"
	"errors"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDuplicateFavorite is returned when a buyer favorites the same vendor twice.
var ErrDuplicateFavorite = errors.New("vendor already favorited")

// FavoriteRepository defines the operations for a buyer's favorite vendors.
// The proximity tracker loads this set to decide who gets threshold alerts.
type FavoriteRepository interface {
	// FindByBuyer retrieves all favorites of a buyer.
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Favorite, error)

	// FindVendorIDsByBuyer retrieves just the favorited vendor IDs of a buyer.
	FindVendorIDsByBuyer(ctx context.Context, buyerID uuid.UUID) ([]uuid.UUID, error)

	// Create persists a new favorite.
	Create(ctx context.Context, favorite *entity.Favorite) error

	// Delete removes a favorite; it is a no-op when absent.
	Delete(ctx context.Context, buyerID, vendorID uuid.UUID) error
}
