package handler

import (
	"log/slog"
	"net/http"

	"kakilima/internal/delivery/http/response"
	"kakilima/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DeviceHandler holds dependencies for push device registration.
type DeviceHandler struct {
	uc     usecase.DeviceUsecase
	logger *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler, injected by Fx.
func NewDeviceHandler(uc usecase.DeviceUsecase, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterDevice records the caller's FCM token for proximity pushes.
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", "")
	}

	var input usecase.RegisterDeviceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	input.UserID = userID

	device, err := h.uc.RegisterDevice(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, device, "Device registered successfully")
}
