package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "kakilima/internal/delivery/context"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/geo"
	"kakilima/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultHeatmapCellSizeDeg is roughly a 1.1 km cell at the equator.
const defaultHeatmapCellSizeDeg = 0.01

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	historyRepo repository.LocationHistoryRepository
	orderRepo   repository.OrderRepository
	logger      *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	HistoryRepo repository.LocationHistoryRepository
	OrderRepo   repository.OrderRepository
	Logger      *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		historyRepo: params.HistoryRepo,
		orderRepo:   params.OrderRepo,
		logger:      params.Logger,
	}
}

func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HeatmapGeoJSON renders the vendor-density heatmap as a GeoJSON
// FeatureCollection. Each occupied grid cell becomes a Polygon feature with
// count and intensity properties, ready for a map overlay.
func (srv *analyticsService) HeatmapGeoJSON(ctx context.Context, input usecase.HeatmapInput) ([]byte, error) {
	cellSize := input.CellSizeDeg
	if cellSize <= 0 {
		cellSize = defaultHeatmapCellSizeDeg
	}

	points, err := srv.recentPoints(ctx, input.Since)
	if err != nil {
		return nil, err
	}

	cells := geo.GridHeatmap(points, cellSize)

	collection := geojson.NewFeatureCollection()
	for _, cell := range cells {
		ring := orb.Ring{
			{cell.CellLon, cell.CellLat},
			{cell.CellLon + cellSize, cell.CellLat},
			{cell.CellLon + cellSize, cell.CellLat + cellSize},
			{cell.CellLon, cell.CellLat + cellSize},
			{cell.CellLon, cell.CellLat},
		}
		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["count"] = cell.Count
		feature.Properties["intensity"] = cell.Intensity
		collection.Append(feature)
	}

	payload, err := collection.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal heatmap geojson")
	}

	srv.log(ctx).Debug("heatmap computed",
		slog.Int("samples", len(points)),
		slog.Int("cells", len(cells)),
	)

	return payload, nil
}

// Clusters groups recent vendor positions into proximity clusters.
func (srv *analyticsService) Clusters(ctx context.Context, input usecase.ClustersInput) ([]geo.Cluster, error) {
	if input.RadiusMeters <= 0 {
		return nil, domainerrors.ErrInvalidInput.WrapMessage("cluster radius must be positive")
	}

	points, err := srv.recentPoints(ctx, input.Since)
	if err != nil {
		return nil, err
	}

	return geo.ClusterByProximity(points, input.RadiusMeters), nil
}

// OrderTrend fits a linear trend over daily completed-order counts and
// forecasts the next day. Days without orders count as zero.
func (srv *analyticsService) OrderTrend(ctx context.Context, days int) (*usecase.TrendOutput, error) {
	if days < 2 {
		return nil, domainerrors.ErrInsufficientData.WrapMessage("trend window must span at least two days")
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	stats, err := srv.orderRepo.DailyStats(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "load daily order stats")
	}

	byDay := make(map[time.Time]int64, len(stats))
	for _, stat := range stats {
		byDay[stat.Day.Truncate(24*time.Hour)] = stat.OrderCount
	}

	daily := make([]usecase.DailyTrendStat, 0, days)
	values := make([]float64, 0, days)
	start := from.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		value := float64(byDay[day])
		daily = append(daily, usecase.DailyTrendStat{Day: day, Value: value})
		values = append(values, value)
	}

	trend, err := geo.LinearTrend(values)
	if err != nil {
		if errors.Is(err, geo.ErrInsufficientData) {
			return nil, domainerrors.ErrInsufficientData
		}
		return nil, errors.Wrap(err, "fit order trend")
	}

	return &usecase.TrendOutput{
		Slope:     trend.Slope,
		Intercept: trend.Intercept,
		Forecast:  trend.ForecastAt(float64(len(values))),
		Daily:     daily,
	}, nil
}

func (srv *analyticsService) recentPoints(ctx context.Context, since time.Time) ([]geo.Point, error) {
	samples, err := srv.historyRepo.FindSince(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "load location history")
	}

	points := make([]geo.Point, 0, len(samples))
	for _, sample := range samples {
		points = append(points, geo.Point{Lat: sample.Latitude, Lon: sample.Longitude})
	}

	return points, nil
}
