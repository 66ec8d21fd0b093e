package handler

import (
	"log/slog"
	"net/http"

	"kakilima/internal/delivery/http/response"
	"kakilima/internal/domain/entity"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VendorHandler holds dependencies for stall-related handlers.
type VendorHandler struct {
	uc     usecase.VendorUsecase
	logger *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(uc usecase.VendorUsecase, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetVendor returns a stall's public detail page.
func (h *VendorHandler) GetVendor(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	detail, err := h.uc.GetVendor(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail, "")
}

// NearbyVendors answers a buyer's proximity query from query parameters.
func (h *VendorHandler) NearbyVendors(c echo.Context) error {
	var input usecase.NearbyVendorsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid nearby query")
	}

	nearby, err := h.uc.NearbyVendors(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nearby, "")
}

// GetOwnVendor returns the authenticated vendor's own stall.
func (h *VendorHandler) GetOwnVendor(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	vendor, err := h.uc.GetOwnVendor(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendor, "")
}

// UpdateVendor applies stall profile changes.
func (h *VendorHandler) UpdateVendor(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input usecase.UpdateVendorInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor input")
	}
	input.OwnerUserID = userID

	vendor, err := h.uc.UpdateVendor(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendor, "Vendor updated successfully")
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus flips the stall's operating state.
func (h *VendorHandler) SetStatus(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input setStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	vendor, err := h.uc.SetStatus(c.Request().Context(), userID, entity.VendorStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendor, "Status updated successfully")
}

// UpsertMenuItem creates or updates a menu item on the vendor's own stall.
func (h *VendorHandler) UpsertMenuItem(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input usecase.UpsertMenuItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	input.OwnerUserID = userID

	item, err := h.uc.UpsertMenuItem(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item saved successfully")
}

// DeleteMenuItem removes a menu item from the vendor's own stall.
func (h *VendorHandler) DeleteMenuItem(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	if err := h.uc.DeleteMenuItem(c.Request().Context(), userID, itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted successfully")
}

// StallQR serves the stall's QR code as a PNG image.
func (h *VendorHandler) StallQR(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	png, err := h.uc.StallQR(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Blob(c, "image/png", png)
}
