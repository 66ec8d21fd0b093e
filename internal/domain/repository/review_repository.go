package repository

import (
	"context"
	"errors"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ErrDuplicateReview is returned when a buyer reviews the same vendor twice.
var ErrDuplicateReview = errors.New("review already exists for this buyer and vendor")

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// FindByVendor retrieves all reviews for a vendor, newest first.
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Review, error)

	// FindByBuyerAndVendor retrieves the buyer's review of a vendor, if any.
	FindByBuyerAndVendor(ctx context.Context, buyerID, vendorID uuid.UUID) (*entity.Review, error)

	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// Update modifies an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// AverageRating computes the mean rating for a vendor; ok is false when
	// the vendor has no reviews yet.
	AverageRating(ctx context.Context, vendorID uuid.UUID) (avg float64, ok bool, err error)
}
