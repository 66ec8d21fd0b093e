package usecase

import (
	"context"
	"time"

	"kakilima/internal/domain/entity"
	"kakilima/internal/domain/repository"
	"kakilima/internal/geo"

	"github.com/google/uuid"
)

// HeatmapInput scopes a vendor-density heatmap query.
type HeatmapInput struct {
	Since       time.Time
	CellSizeDeg float64 // 0 applies the default cell size
}

// ClustersInput scopes a vendor-cluster query.
type ClustersInput struct {
	Since        time.Time
	RadiusMeters float64
}

// TrendOutput is a fitted activity trend with a next-period forecast.
type TrendOutput struct {
	Slope     float64          `json:"slope"`
	Intercept float64          `json:"intercept"`
	Forecast  float64          `json:"forecast"`
	Daily     []DailyTrendStat `json:"daily"`
}

// DailyTrendStat is one day's observed value feeding the trend fit.
type DailyTrendStat struct {
	Day   time.Time `json:"day"`
	Value float64   `json:"value"`
}

// AnalyticsUsecase defines the admin-facing analytics operations, computed
// over the persisted location history and order log.
type AnalyticsUsecase interface {
	// HeatmapGeoJSON renders the vendor-density heatmap as a GeoJSON
	// FeatureCollection of grid cells, each carrying count and intensity.
	HeatmapGeoJSON(ctx context.Context, input HeatmapInput) ([]byte, error)

	// Clusters groups recent vendor positions into proximity clusters.
	Clusters(ctx context.Context, input ClustersInput) ([]geo.Cluster, error)

	// OrderTrend fits a linear trend over daily completed-order counts.
	OrderTrend(ctx context.Context, days int) (*TrendOutput, error)
}

// AdminUsecase defines moderation operations restricted to admin accounts.
type AdminUsecase interface {
	ListUsers(ctx context.Context, role *entity.Role) ([]*entity.User, error)
	ListVendors(ctx context.Context) ([]*entity.Vendor, error)
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) error
	SetVendorSuspended(ctx context.Context, vendorID uuid.UUID, suspended bool) error
	DailyOrderStats(ctx context.Context, days int) ([]repository.DailyOrderStat, error)
}
