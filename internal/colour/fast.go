package colour

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// pointObservation adapts a ColorPoint to the muesli/clusters observation
// interface.
type pointObservation struct {
	p ColorPoint
}

func (o pointObservation) Coordinates() clusters.Coordinates {
	return clusters.Coordinates{o.p[0], o.p[1], o.p[2]}
}

func (o pointObservation) Distance(point clusters.Coordinates) float64 {
	d0 := o.p[0] - point[0]
	d1 := o.p[1] - point[1]
	d2 := o.p[2] - point[2]
	return d0*d0 + d1*d1 + d2*d2
}

// fastCluster partitions points with the muesli/kmeans library. The library
// seeds from the system RNG, so this mode trades reproducibility for speed.
// The result is padded by repetition if the partitioner returns fewer than k
// clusters, preserving the exact-k cardinality contract.
func fastCluster(points []ColorPoint, k int) ([]ColorPoint, error) {
	observations := make(clusters.Observations, len(points))
	for i, p := range points {
		observations[i] = pointObservation{p: p}
	}

	km := kmeans.New()
	partitions, err := km.Partition(observations, k)
	if err != nil {
		return nil, fmt.Errorf("fast clustering failed: %w", err)
	}

	centroids := make([]ColorPoint, 0, k)
	for _, c := range partitions {
		centroids = append(centroids, ColorPoint{c.Center[0], c.Center[1], c.Center[2]})
	}

	if len(centroids) == 0 {
		return nil, fmt.Errorf("fast clustering returned no clusters")
	}
	for len(centroids) < k {
		centroids = append(centroids, centroids[len(centroids)-1])
	}
	return centroids[:k], nil
}
