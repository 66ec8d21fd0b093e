package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "850m", FormatDistance(0.85))
	assert.Equal(t, "1.2km", FormatDistance(1.23))
	assert.Equal(t, "0m", FormatDistance(0))
	assert.Equal(t, "1.0km", FormatDistance(1))
}

func TestEstimateETA(t *testing.T) {
	t.Parallel()

	// 5 km at 30 km/h is 10 minutes.
	assert.Equal(t, 10, EstimateETA(5, 30))
	// Fallback speed applies when the caller passes zero.
	assert.Equal(t, 10, EstimateETA(5, 0))
	assert.Equal(t, 0, EstimateETA(0, 30))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "1 hr", FormatDuration(60))
	assert.Equal(t, "2 hr 5 min", FormatDuration(125))
}

func TestRoundCoordinate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -6.208763, RoundCoordinate(-6.20876349))
	assert.Equal(t, 106.845599, RoundCoordinate(106.84559901))
}
