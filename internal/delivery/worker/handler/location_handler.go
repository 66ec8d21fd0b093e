// Package handler contains the Pub/Sub push handlers for the location worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"kakilima/config"
	deliverycontext "kakilima/internal/delivery/context"
	"kakilima/internal/domain/constants"
	"kakilima/internal/domain/entity"
	"kakilima/internal/domain/repository"
	"kakilima/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// LocationHandler consumes location events off the Pub/Sub push endpoint and
// persists them as history rows, the raw material for the admin analytics.
type LocationHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	historyRepo    repository.LocationHistoryRepository
}

// LocationHandlerParams holds dependencies for the LocationHandler
type LocationHandlerParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	HistoryRepo repository.LocationHistoryRepository
}

// NewLocationHandler creates a new Pub/Sub push handler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	// Google's push requests carry a signed token; local emulators don't.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &LocationHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		historyRepo:    params.HistoryRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *LocationHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.LocationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse location event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.processLocationEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process location event",
			slog.String("vendor_id", event.VendorID.String()),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// 503 triggers a Pub/Sub retry; 200 acknowledges a poison message so
		// it is not redelivered forever.
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Location event persisted",
		slog.String("vendor_id", event.VendorID.String()),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *LocationHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.LocationEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processLocationEvent turns one accepted ping into a history row.
func (h *LocationHandler) processLocationEvent(ctx context.Context, event *service.LocationEvent) error {
	if event.VendorID == uuid.Nil {
		return errors.New("location event has no vendor id")
	}

	recordedAt := event.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	sample := &entity.VendorLocationSample{
		ID:         uuid.New(),
		VendorID:   event.VendorID,
		Latitude:   event.Latitude,
		Longitude:  event.Longitude,
		RecordedAt: recordedAt,
	}

	// Storage hiccups are worth a redelivery; the sample is otherwise lost.
	if err := h.historyRepo.Create(ctx, sample); err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this push endpoint.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
