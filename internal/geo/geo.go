// Package geo provides the pure geospatial math used by the proximity
// engine and the admin analytics: great-circle distances, radius filtering,
// greedy clustering, heatmap bucketing and a least-squares trend fit.
// All functions are stateless.
package geo

import "math"

// earthRadiusMeters is the mean sphere radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Point is a WGS84 coordinate in signed degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Position implements Positioned, so plain points can feed WithinRadius.
func (p Point) Position() Point {
	return p
}

// Positioned is anything that can report a coordinate.
type Positioned interface {
	Position() Point
}

// Distance returns the great-circle distance in meters between two
// coordinates, via the haversine formula on a sphere of radius 6,371,000 m.
// It is symmetric and zero for identical coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius filters candidates whose distance to the center is at most
// radiusMeters (inclusive boundary). Input order is preserved.
func WithinRadius[T Positioned](center Point, candidates []T, radiusMeters float64) []T {
	result := make([]T, 0, len(candidates))
	for _, candidate := range candidates {
		pos := candidate.Position()
		if Distance(center.Lat, center.Lon, pos.Lat, pos.Lon) <= radiusMeters {
			result = append(result, candidate)
		}
	}

	return result
}
