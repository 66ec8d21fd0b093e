package geo

import "math"

// DefaultIntensityCeiling is the point count at which a heatmap cell
// saturates to full intensity.
const DefaultIntensityCeiling = 10

// HeatCell is one occupied grid cell of a density heatmap.
type HeatCell struct {
	CellLat   float64 `json:"cell_lat"`  // Southern edge of the cell in degrees.
	CellLon   float64 `json:"cell_lon"`  // Western edge of the cell in degrees.
	Count     int     `json:"count"`     // Points bucketed into the cell.
	Intensity float64 `json:"intensity"` // min(count/ceiling, 1).
}

// GridHeatmap buckets points into a degree grid with the default intensity
// ceiling. Cells are returned in first-occupied order.
func GridHeatmap(points []Point, cellSizeDegrees float64) []HeatCell {
	return GridHeatmapWithCeiling(points, cellSizeDegrees, DefaultIntensityCeiling)
}

// GridHeatmapWithCeiling buckets each point by flooring lat/cellSize and
// lon/cellSize, scaled back up to degrees. Intensity is count/ceiling capped
// at 1, so a caller can pick its own saturation point.
func GridHeatmapWithCeiling(points []Point, cellSizeDegrees float64, ceiling int) []HeatCell {
	type cellKey struct {
		lat, lon int
	}

	index := make(map[cellKey]int)
	cells := make([]HeatCell, 0)

	for _, point := range points {
		key := cellKey{
			lat: int(math.Floor(point.Lat / cellSizeDegrees)),
			lon: int(math.Floor(point.Lon / cellSizeDegrees)),
		}

		if i, ok := index[key]; ok {
			cells[i].Count++
			continue
		}

		index[key] = len(cells)
		cells = append(cells, HeatCell{
			CellLat: float64(key.lat) * cellSizeDegrees,
			CellLon: float64(key.lon) * cellSizeDegrees,
			Count:   1,
		})
	}

	for i := range cells {
		cells[i].Intensity = math.Min(float64(cells[i].Count)/float64(ceiling), 1)
	}

	return cells
}
