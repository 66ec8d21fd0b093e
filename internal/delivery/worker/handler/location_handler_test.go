package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kakilima/config"
	"kakilima/internal/domain/entity"
	"kakilima/internal/domain/service"
	mockRepo "kakilima/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type handlerFixtures struct {
	historyRepo *mockRepo.MockLocationHistoryRepository
}

func createTestLocationHandler(t *testing.T) (*LocationHandler, *handlerFixtures) {
	t.Helper()

	fixtures := &handlerFixtures{
		historyRepo: mockRepo.NewMockLocationHistoryRepository(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewLocationHandler(LocationHandlerParams{
		Config:      &config.Config{},
		Logger:      logger,
		HistoryRepo: fixtures.historyRepo,
	})

	return h, fixtures
}

func pushRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func encodeEvent(t *testing.T, event service.LocationEvent) string {
	t.Helper()

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(raw),
			"messageId": "42",
		},
		"subscription": "projects/test/subscriptions/location-events",
	})
	require.NoError(t, err)

	return string(body)
}

func TestLocationHandler_HandlePush_PersistsSample(t *testing.T) {
	h, fixtures := createTestLocationHandler(t)

	vendorID := uuid.New()
	recordedAt := time.Date(2026, 3, 14, 11, 30, 0, 0, time.UTC)

	fixtures.historyRepo.On("Create", mock.Anything, mock.MatchedBy(func(sample *entity.VendorLocationSample) bool {
		return sample.VendorID == vendorID &&
			sample.Latitude == -6.2088 &&
			sample.Longitude == 106.8456 &&
			sample.RecordedAt.Equal(recordedAt)
	})).Return(nil)

	c, rec := pushRequest(t, encodeEvent(t, service.LocationEvent{
		VendorID:  vendorID,
		Latitude:  -6.2088,
		Longitude: 106.8456,
		Status:    "ACTIVE",
		Timestamp: recordedAt,
	}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocationHandler_HandlePush_StorageFailureAsksForRetry(t *testing.T) {
	h, fixtures := createTestLocationHandler(t)

	fixtures.historyRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))

	c, rec := pushRequest(t, encodeEvent(t, service.LocationEvent{
		VendorID: uuid.New(),
		Latitude: -6.2088,
	}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLocationHandler_HandlePush_MissingVendorAcknowledged(t *testing.T) {
	h, _ := createTestLocationHandler(t)

	// A poison message must be acked, never redelivered forever.
	c, rec := pushRequest(t, encodeEvent(t, service.LocationEvent{
		Latitude: -6.2088,
	}))

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLocationHandler_HandlePush_BadBase64Rejected(t *testing.T) {
	h, _ := createTestLocationHandler(t)

	c, rec := pushRequest(t, `{"message":{"data":"%%%not-base64%%%"},"subscription":"s"}`)

	require.NoError(t, h.HandlePush(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
