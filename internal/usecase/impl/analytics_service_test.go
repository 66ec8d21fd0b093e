package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	mockRepo "kakilima/internal/mocks/repository"
	"kakilima/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// analyticsServiceFixtures holds all test dependencies for analytics service tests.
type analyticsServiceFixtures struct {
	service     usecase.AnalyticsUsecase
	historyRepo *mockRepo.MockLocationHistoryRepository
	orderRepo   *mockRepo.MockOrderRepository
}

func createTestAnalyticsService(t *testing.T) analyticsServiceFixtures {
	historyRepo := mockRepo.NewMockLocationHistoryRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAnalyticsService(AnalyticsServiceParams{
		HistoryRepo: historyRepo,
		OrderRepo:   orderRepo,
		Logger:      logger,
	})

	return analyticsServiceFixtures{
		service:     service,
		historyRepo: historyRepo,
		orderRepo:   orderRepo,
	}
}

func TestAnalyticsService_HeatmapGeoJSON_BucketsSamples(t *testing.T) {
	fx := createTestAnalyticsService(t)
	ctx := context.Background()
	since := time.Now().Add(-time.Hour)

	// Two samples land in the same 0.01 degree cell, one in another.
	fx.historyRepo.On("FindSince", ctx, since).Return([]*entity.VendorLocationSample{
		{Latitude: -6.2081, Longitude: 106.8451},
		{Latitude: -6.2089, Longitude: 106.8459},
		{Latitude: -6.2510, Longitude: 106.9010},
	}, nil)

	payload, err := fx.service.HeatmapGeoJSON(ctx, usecase.HeatmapInput{Since: since})
	require.NoError(t, err)

	var collection struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(payload, &collection))

	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 2)
	assert.Equal(t, "Polygon", collection.Features[0].Geometry.Type)
	assert.EqualValues(t, 2, collection.Features[0].Properties["count"])
	assert.EqualValues(t, 1, collection.Features[1].Properties["count"])
}

func TestAnalyticsService_Clusters_GroupsNearbySamples(t *testing.T) {
	fx := createTestAnalyticsService(t)
	ctx := context.Background()
	since := time.Now().Add(-time.Hour)

	fx.historyRepo.On("FindSince", ctx, since).Return([]*entity.VendorLocationSample{
		{Latitude: -6.2081, Longitude: 106.8451},
		{Latitude: -6.2082, Longitude: 106.8452},
		{Latitude: -6.3000, Longitude: 107.0000},
	}, nil)

	clusters, err := fx.service.Clusters(ctx, usecase.ClustersInput{
		Since:        since,
		RadiusMeters: 300,
	})
	require.NoError(t, err)
	require.Len(t, clusters, 2)
	assert.Equal(t, 2, clusters[0].Count)
	assert.Equal(t, 1, clusters[1].Count)
}

func TestAnalyticsService_Clusters_RejectsNonPositiveRadius(t *testing.T) {
	fx := createTestAnalyticsService(t)

	_, err := fx.service.Clusters(context.Background(), usecase.ClustersInput{
		Since:        time.Now(),
		RadiusMeters: 0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAnalyticsService_OrderTrend_FitsDailyCounts(t *testing.T) {
	fx := createTestAnalyticsService(t)
	ctx := context.Background()

	fx.orderRepo.On("DailyStats", ctx, mock.Anything, mock.Anything).
		Return([]repository.DailyOrderStat{}, nil)

	trend, err := fx.service.OrderTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, trend.Daily, 7)
	// All-zero series fits a flat line.
	assert.InDelta(t, 0, trend.Slope, 1e-9)
	assert.InDelta(t, 0, trend.Forecast, 1e-9)
}

func TestAnalyticsService_OrderTrend_WindowTooSmall(t *testing.T) {
	fx := createTestAnalyticsService(t)

	_, err := fx.service.OrderTrend(context.Background(), 1)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientData)
}
