package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"kakilima/internal/delivery/http/response"
	"kakilima/internal/domain/entity"
	"kakilima/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for moderation and analytics handlers.
type AdminHandler struct {
	adminUC     usecase.AdminUsecase
	analyticsUC usecase.AnalyticsUsecase
	logger      *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, analyticsUC usecase.AnalyticsUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC:     adminUC,
		analyticsUC: analyticsUC,
		logger:      logger,
	}
}

// queryInt reads an integer query parameter, falling back to def when absent
// or unparsable.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return v
}

// ListUsers returns all accounts, optionally filtered by role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var role *entity.Role
	if raw := c.QueryParam("role"); raw != "" {
		r := entity.Role(raw)
		role = &r
	}

	users, err := h.adminUC.ListUsers(c.Request().Context(), role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// ListVendors returns every stall, suspended ones included.
func (h *AdminHandler) ListVendors(c echo.Context) error {
	vendors, err := h.adminUC.ListVendors(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, vendors, "")
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetUserActive suspends or reinstates an account.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var input setActiveRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.adminUC.SetUserActive(c.Request().Context(), userID, input.Active); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User updated successfully")
}

type setSuspendedRequest struct {
	Suspended bool `json:"suspended"`
}

// SetVendorSuspended suspends or reinstates a stall.
func (h *AdminHandler) SetVendorSuspended(c echo.Context) error {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	var input setSuspendedRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.adminUC.SetVendorSuspended(c.Request().Context(), vendorID, input.Suspended); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Vendor updated successfully")
}

// DailyOrderStats returns completed-order counts per day.
func (h *AdminHandler) DailyOrderStats(c echo.Context) error {
	days := queryInt(c, "days", 7)

	stats, err := h.adminUC.DailyOrderStats(c.Request().Context(), days)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// Heatmap renders the vendor-density heatmap as GeoJSON.
func (h *AdminHandler) Heatmap(c echo.Context) error {
	hours := queryInt(c, "hours", 24)

	geojson, err := h.analyticsUC.HeatmapGeoJSON(c.Request().Context(), usecase.HeatmapInput{
		Since: time.Now().Add(-time.Duration(hours) * time.Hour),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "application/geo+json", geojson)
}

// Clusters groups recent vendor positions into proximity clusters.
func (h *AdminHandler) Clusters(c echo.Context) error {
	hours := queryInt(c, "hours", 24)
	radius := queryInt(c, "radius", 200)

	clusters, err := h.analyticsUC.Clusters(c.Request().Context(), usecase.ClustersInput{
		Since:        time.Now().Add(-time.Duration(hours) * time.Hour),
		RadiusMeters: float64(radius),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, clusters, "")
}

// OrderTrend fits a linear trend over daily order counts.
func (h *AdminHandler) OrderTrend(c echo.Context) error {
	days := queryInt(c, "days", 7)

	trend, err := h.analyticsUC.OrderTrend(c.Request().Context(), days)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, trend, "")
}
