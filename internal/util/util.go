// Package util holds small presentation helpers shared across delivery layers.
package util

import (
	"fmt"
	"math"
)

// DefaultTravelSpeedKmh is the assumed vendor cart travel speed used when a
// caller does not supply one.
const DefaultTravelSpeedKmh = 30.0

// FormatDistance renders a distance in kilometers in the display format
// clients expect: meters below one kilometer, one-decimal kilometers above.
func FormatDistance(distanceKm float64) string {
	if distanceKm < 1 {
		return fmt.Sprintf("%.0fm", distanceKm*1000)
	}

	return fmt.Sprintf("%.1fkm", distanceKm)
}

// EstimateETA returns the travel time in whole minutes for a distance at the
// given speed. Non-positive speeds fall back to DefaultTravelSpeedKmh.
func EstimateETA(distanceKm float64, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultTravelSpeedKmh
	}

	return int(math.Round(distanceKm / speedKmh * 60))
}

// FormatDuration renders a minute count as a short human label.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}

	return fmt.Sprintf("%d hr %d min", h, m)
}

// RoundCoordinate truncates excess GPS precision before persisting or
// broadcasting. Six decimal places is roughly 0.1 meter resolution.
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
