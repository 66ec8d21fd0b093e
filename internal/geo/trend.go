package geo

import "errors"

// ErrInsufficientData is returned when a trend fit is attempted on fewer
// than two points or on a series with no x-variance.
var ErrInsufficientData = errors.New("insufficient data for trend fit")

// Trend is the result of an ordinary least-squares line fit.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// LinearTrend fits y = slope*x + intercept over the series, treating the
// sequence index as x. Degenerate input fails with ErrInsufficientData
// instead of dividing by zero.
func LinearTrend(values []float64) (Trend, error) {
	n := float64(len(values))
	if len(values) < 2 {
		return Trend{}, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return Trend{}, ErrInsufficientData
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	return Trend{Slope: slope, Intercept: intercept}, nil
}

// ForecastAt evaluates the fitted line at the given index.
func (t Trend) ForecastAt(x float64) float64 {
	return t.Slope*x + t.Intercept
}
