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

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	reviewRepo repository.ReviewRepository
	vendorRepo repository.VendorRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo repository.ReviewRepository
	VendorRepo repository.VendorRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo: params.ReviewRepo,
		vendorRepo: params.VendorRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitReview creates or updates the buyer's review of a vendor.
func (srv *reviewService) SubmitReview(ctx context.Context, input usecase.SubmitReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("rating must be between 1 and 5")
	}

	if _, err := srv.vendorRepo.FindByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "find vendor by id")
	}

	existing, err := srv.reviewRepo.FindByBuyerAndVendor(ctx, input.BuyerID, input.VendorID)
	if err != nil && !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, errors.Wrap(err, "find review by buyer and vendor")
	}

	if existing != nil {
		existing.Rating = input.Rating
		existing.Comment = input.Comment
		existing.OrderID = input.OrderID
		if err := srv.reviewRepo.Update(ctx, existing); err != nil {
			return nil, errors.Wrap(err, "update review")
		}

		return existing, nil
	}

	review := &entity.Review{
		BuyerID:  input.BuyerID,
		VendorID: input.VendorID,
		OrderID:  input.OrderID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, domainerrors.ErrDuplicateReview
		}

		return nil, errors.Wrap(err, "create review")
	}

	srv.log(ctx).Info("review submitted",
		slog.String("vendor_id", input.VendorID.String()),
		slog.Int("rating", input.Rating),
	)

	return review, nil
}

// ListVendorReviews retrieves all reviews for a vendor, newest first.
func (srv *reviewService) ListVendorReviews(ctx context.Context, vendorID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "find reviews by vendor")
	}

	return reviews, nil
}

// VendorRating summarizes a vendor's reviews.
func (srv *reviewService) VendorRating(ctx context.Context, vendorID uuid.UUID) (*usecase.VendorRatingOutput, error) {
	reviews, err := srv.reviewRepo.FindByVendor(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "find reviews by vendor")
	}

	avg, ok, err := srv.reviewRepo.AverageRating(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "average rating")
	}

	return &usecase.VendorRatingOutput{
		AverageRating: avg,
		HasRating:     ok,
		ReviewCount:   len(reviews),
	}, nil
}

// favoriteService implements the FavoriteUsecase interface.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	vendorRepo   repository.VendorRepository
	logger       *slog.Logger
}

// FavoriteServiceParams holds dependencies for FavoriteService, injected by Fx.
type FavoriteServiceParams struct {
	fx.In

	FavoriteRepo repository.FavoriteRepository
	VendorRepo   repository.VendorRepository
	Logger       *slog.Logger
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(params FavoriteServiceParams) usecase.FavoriteUsecase {
	return &favoriteService{
		favoriteRepo: params.FavoriteRepo,
		vendorRepo:   params.VendorRepo,
		logger:       params.Logger,
	}
}

// AddFavorite marks a vendor for proximity alerts.
func (srv *favoriteService) AddFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error {
	if _, err := srv.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domainerrors.ErrVendorNotFound
		}

		return errors.Wrap(err, "find vendor by id")
	}

	favorite := &entity.Favorite{BuyerID: buyerID, VendorID: vendorID}
	if err := srv.favoriteRepo.Create(ctx, favorite); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return domainerrors.ErrDuplicateFavorite
		}

		return errors.Wrap(err, "create favorite")
	}

	return nil
}

// RemoveFavorite drops a vendor from the buyer's favorites.
func (srv *favoriteService) RemoveFavorite(ctx context.Context, buyerID, vendorID uuid.UUID) error {
	if err := srv.favoriteRepo.Delete(ctx, buyerID, vendorID); err != nil {
		return errors.Wrap(err, "delete favorite")
	}

	return nil
}

// ListFavoriteVendorIDs retrieves just the favorited vendor IDs of a buyer.
func (srv *favoriteService) ListFavoriteVendorIDs(ctx context.Context, buyerID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := srv.favoriteRepo.FindVendorIDsByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "find favorite vendor ids")
	}

	return ids, nil
}

// ListFavoriteVendors retrieves the full vendor rows for a buyer's favorites.
func (srv *favoriteService) ListFavoriteVendors(ctx context.Context, buyerID uuid.UUID) ([]*entity.Vendor, error) {
	ids, err := srv.favoriteRepo.FindVendorIDsByBuyer(ctx, buyerID)
	if err != nil {
		return nil, errors.Wrap(err, "find favorite vendor ids")
	}

	vendors := make([]*entity.Vendor, 0, len(ids))
	for _, id := range ids {
		vendor, err := srv.vendorRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrVendorNotFound) {
				continue // Favorite of a since-deleted vendor.
			}

			return nil, errors.Wrap(err, "find vendor by id")
		}
		vendors = append(vendors, vendor)
	}

	return vendors, nil
}
