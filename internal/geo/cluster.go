package geo

// Cluster groups nearby points around a seed and reports their centroid.
type Cluster struct {
	CenterLat float64 `json:"center_lat"` // Arithmetic mean latitude of the members.
	CenterLon float64 `json:"center_lon"` // Arithmetic mean longitude of the members.
	Count     int     `json:"count"`      // Number of member points.
	Points    []Point `json:"points"`     // The member points, seed first.
}

// ClusterByProximity groups points with a greedy single pass: each
// unprocessed point in input order opens a cluster, then absorbs every later
// unprocessed point within radiusMeters of that seed (not of each other; no
// chain merging happens). The result is an O(n²) seed-linkage approximation,
// not an optimal clustering, which is fine for map pin grouping.
func ClusterByProximity(points []Point, radiusMeters float64) []Cluster {
	clusters := make([]Cluster, 0)
	processed := make([]bool, len(points))

	for i, seed := range points {
		if processed[i] {
			continue
		}
		processed[i] = true

		members := []Point{seed}
		for j := i + 1; j < len(points); j++ {
			if processed[j] {
				continue
			}
			if Distance(seed.Lat, seed.Lon, points[j].Lat, points[j].Lon) <= radiusMeters {
				members = append(members, points[j])
				processed[j] = true
			}
		}

		var sumLat, sumLon float64
		for _, member := range members {
			sumLat += member.Lat
			sumLon += member.Lon
		}

		clusters = append(clusters, Cluster{
			CenterLat: sumLat / float64(len(members)),
			CenterLon: sumLon / float64(len(members)),
			Count:     len(members),
			Points:    members,
		})
	}

	return clusters
}
