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

// reviewServiceFixtures holds all test dependencies for review service tests.
type reviewServiceFixtures struct {
	service    usecase.ReviewUsecase
	reviewRepo *mockRepo.MockReviewRepository
	vendorRepo *mockRepo.MockVendorRepository
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	reviewRepo := mockRepo.NewMockReviewRepository(t)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewReviewService(ReviewServiceParams{
		ReviewRepo: reviewRepo,
		VendorRepo: vendorRepo,
		Logger:     logger,
	})

	return reviewServiceFixtures{
		service:    service,
		reviewRepo: reviewRepo,
		vendorRepo: vendorRepo,
	}
}

func TestReviewService_SubmitReview_CreatesNew(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.reviewRepo.On("FindByBuyerAndVendor", ctx, buyerID, vendorID).
		Return(nil, repository.ErrReviewNotFound)
	fx.reviewRepo.On("Create", ctx, mock.MatchedBy(func(review *entity.Review) bool {
		return review.Rating == 5 && review.VendorID == vendorID
	})).Return(nil)

	review, err := fx.service.SubmitReview(ctx, usecase.SubmitReviewInput{
		BuyerID:  buyerID,
		VendorID: vendorID,
		Rating:   5,
		Comment:  "Sate terenak di Jakarta",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_SubmitReview_UpdatesExistingInPlace(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()

	existing := &entity.Review{
		ID:       uuid.New(),
		BuyerID:  buyerID,
		VendorID: vendorID,
		Rating:   2,
		Comment:  "kurang enak",
	}

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.reviewRepo.On("FindByBuyerAndVendor", ctx, buyerID, vendorID).
		Return(existing, nil)
	fx.reviewRepo.On("Update", ctx, existing).Return(nil)

	review, err := fx.service.SubmitReview(ctx, usecase.SubmitReviewInput{
		BuyerID:  buyerID,
		VendorID: vendorID,
		Rating:   4,
		Comment:  "sudah lebih enak",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, review.ID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "sudah lebih enak", review.Comment)
}

func TestReviewService_SubmitReview_RatingOutOfRange(t *testing.T) {
	fx := createTestReviewService(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := fx.service.SubmitReview(context.Background(), usecase.SubmitReviewInput{
			BuyerID:  uuid.New(),
			VendorID: uuid.New(),
			Rating:   rating,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	}
}

func TestReviewService_VendorRating_Summary(t *testing.T) {
	fx := createTestReviewService(t)
	ctx := context.Background()
	vendorID := uuid.New()

	fx.reviewRepo.On("FindByVendor", ctx, vendorID).Return([]*entity.Review{
		{Rating: 5}, {Rating: 4},
	}, nil)
	fx.reviewRepo.On("AverageRating", ctx, vendorID).Return(4.5, true, nil)

	rating, err := fx.service.VendorRating(ctx, vendorID)
	require.NoError(t, err)
	assert.Equal(t, 2, rating.ReviewCount)
	assert.InDelta(t, 4.5, rating.AverageRating, 1e-9)
	assert.True(t, rating.HasRating)
}

// favoriteServiceFixtures holds all test dependencies for favorite service tests.
type favoriteServiceFixtures struct {
	service      usecase.FavoriteUsecase
	favoriteRepo *mockRepo.MockFavoriteRepository
	vendorRepo   *mockRepo.MockVendorRepository
}

func createTestFavoriteService(t *testing.T) favoriteServiceFixtures {
	favoriteRepo := mockRepo.NewMockFavoriteRepository(t)
	vendorRepo := mockRepo.NewMockVendorRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewFavoriteService(FavoriteServiceParams{
		FavoriteRepo: favoriteRepo,
		VendorRepo:   vendorRepo,
		Logger:       logger,
	})

	return favoriteServiceFixtures{
		service:      service,
		favoriteRepo: favoriteRepo,
		vendorRepo:   vendorRepo,
	}
}

func TestFavoriteService_AddFavorite_Success(t *testing.T) {
	fx := createTestFavoriteService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.favoriteRepo.On("Create", ctx, mock.MatchedBy(func(favorite *entity.Favorite) bool {
		return favorite.BuyerID == buyerID && favorite.VendorID == vendorID
	})).Return(nil)

	err := fx.service.AddFavorite(ctx, buyerID, vendorID)
	assert.NoError(t, err)
}

func TestFavoriteService_AddFavorite_Duplicate(t *testing.T) {
	fx := createTestFavoriteService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorID := uuid.New()

	fx.vendorRepo.On("FindByID", ctx, vendorID).
		Return(&entity.Vendor{ID: vendorID}, nil)
	fx.favoriteRepo.On("Create", ctx, mock.Anything).
		Return(repository.ErrDuplicateFavorite)

	err := fx.service.AddFavorite(ctx, buyerID, vendorID)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateFavorite)
}

func TestFavoriteService_ListFavoriteVendorIDs(t *testing.T) {
	fx := createTestFavoriteService(t)
	ctx := context.Background()
	buyerID := uuid.New()
	vendorIDs := []uuid.UUID{uuid.New(), uuid.New()}

	fx.favoriteRepo.On("FindVendorIDsByBuyer", ctx, buyerID).Return(vendorIDs, nil)

	ids, err := fx.service.ListFavoriteVendorIDs(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, vendorIDs, ids)
}
