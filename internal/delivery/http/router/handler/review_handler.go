package handler

import (
	"log/slog"
	"net/http"

	"kakilima/internal/delivery/http/response"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review and favorite handlers.
type ReviewHandler struct {
	reviewUC   usecase.ReviewUsecase
	favoriteUC usecase.FavoriteUsecase
	logger     *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(reviewUC usecase.ReviewUsecase, favoriteUC usecase.FavoriteUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC:   reviewUC,
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// SubmitReview creates or updates the authenticated buyer's review of a vendor.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input usecase.SubmitReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	input.BuyerID = userID

	review, err := h.reviewUC.SubmitReview(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review, "Review submitted successfully")
}

// ListVendorReviews returns a vendor's reviews, newest first.
func (h *ReviewHandler) ListVendorReviews(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	reviews, err := h.reviewUC.ListVendorReviews(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// VendorRating returns a vendor's rating summary.
func (h *ReviewHandler) VendorRating(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	rating, err := h.reviewUC.VendorRating(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rating, "")
}

// AddFavorite puts a vendor on the authenticated buyer's favorites list.
func (h *ReviewHandler) AddFavorite(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	vendorID, err := uuid.Parse(c.Param("vendorID"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	if err := h.favoriteUC.AddFavorite(c.Request().Context(), userID, vendorID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Favorite added successfully")
}

// RemoveFavorite takes a vendor off the authenticated buyer's favorites list.
func (h *ReviewHandler) RemoveFavorite(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	vendorID, err := uuid.Parse(c.Param("vendorID"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	if err := h.favoriteUC.RemoveFavorite(c.Request().Context(), userID, vendorID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Favorite removed successfully")
}

// ListFavorites returns the authenticated buyer's favorite vendors.
func (h *ReviewHandler) ListFavorites(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	vendors, err := h.favoriteUC.ListFavoriteVendors(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendors, "")
}
