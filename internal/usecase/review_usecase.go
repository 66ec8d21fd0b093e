package usecase

import (
	"context"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitReviewInput defines the data for creating or editing a review.
type SubmitReviewInput struct {
	BuyerID  uuid.UUID  `json:"-"`
	VendorID uuid.UUID  `json:"vendor_id"`
	OrderID  *uuid.UUID `json:"order_id,omitempty"`
	Rating   int        `json:"rating"`
	Comment  string     `json:"comment"`
}

// VendorRatingOutput summarizes a vendor's reviews.
type VendorRatingOutput struct {
	AverageRating float64 `json:"average_rating"`
	HasRating     bool    `json:"has_rating"`
	ReviewCount   int     `json:"review_count"`
}

// ReviewUsecase defines the interface for review-related business operations.
type ReviewUsecase interface {
	// SubmitReview creates the buyer's review of a vendor, or updates it if
	// one already exists. One review per buyer and vendor.
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*entity.Review, error)

	ListVendorReviews(ctx context.Context, vendorID uuid.UUID) ([]*entity.Review, error)
	VendorRating(ctx context.Context, vendorID uuid.UUID) (*VendorRatingOutput, error)
}

// FavoriteUsecase defines the interface for a buyer's favorite vendors.
type FavoriteUsecase interface {
	AddFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error
	RemoveFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error
	ListFavoriteVendorIDs(ctx context.Context, buyerID uuid.UUID) ([]uuid.UUID, error)
	ListFavoriteVendors(ctx context.Context, buyerID uuid.UUID) ([]*entity.Vendor, error)
}
