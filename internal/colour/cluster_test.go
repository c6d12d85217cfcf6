package colour

import (
	"errors"
	"math/rand"
	"testing"
)

// twoGroupPoints builds points scattered tightly around a red and a blue
// centre, deterministically.
func twoGroupPoints(n int) []ColorPoint {
	rng := rand.New(rand.NewSource(7))
	points := make([]ColorPoint, 0, n)
	for i := 0; i < n; i++ {
		jitter := func() float64 { return rng.Float64()*10 - 5 }
		if i%2 == 0 {
			points = append(points, ColorPoint{200 + jitter(), 50 + jitter(), 50 + jitter()})
		} else {
			points = append(points, ColorPoint{50 + jitter(), 50 + jitter(), 200 + jitter()})
		}
	}
	return points
}

func TestClusterInvalidArguments(t *testing.T) {
	points := twoGroupPoints(100)

	tests := []struct {
		name    string
		points  []ColorPoint
		k       int
		wantErr error
	}{
		{name: "no points", points: nil, k: 4, wantErr: ErrNoPoints},
		{name: "k below minimum", points: points, k: 1, wantErr: ErrInvalidColourCount},
		{name: "k above maximum", points: points, k: 513, wantErr: ErrInvalidColourCount},
		{name: "k above point count", points: points[:3], k: 4, wantErr: ErrTooFewPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cluster(tt.points, tt.k, ClusterConfig{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Cluster error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClusterUnknownAlgorithm(t *testing.T) {
	_, err := Cluster(twoGroupPoints(50), 2, ClusterConfig{Algorithm: "mediancut"})
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestClusterCardinality(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmHybrid, AlgorithmKMeans} {
		t.Run(string(alg), func(t *testing.T) {
			for _, k := range []int{2, 3, 8, 16} {
				res, err := Cluster(twoGroupPoints(400), k, ClusterConfig{Algorithm: alg})
				if err != nil {
					t.Fatalf("Cluster(k=%d) failed: %v", k, err)
				}
				if len(res.Centroids) != k {
					t.Errorf("Cluster(k=%d) returned %d centroids", k, len(res.Centroids))
				}
			}
		})
	}
}

func TestClusterMoreColoursThanDistinct(t *testing.T) {
	// A single distinct colour and k=4: duplicates are legal, not an error.
	points := make([]ColorPoint, 50)
	for i := range points {
		points[i] = ColorPoint{120, 60, 30}
	}

	res, err := Cluster(points, 4, ClusterConfig{Algorithm: AlgorithmKMeans})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if len(res.Centroids) != 4 {
		t.Fatalf("expected 4 centroids, got %d", len(res.Centroids))
	}
	for _, c := range res.Centroids {
		if c != (ColorPoint{120, 60, 30}) {
			t.Errorf("centroid %v, want the single input colour", c)
		}
	}
}

func TestClusterDeterministic(t *testing.T) {
	points := twoGroupPoints(600)

	for _, alg := range []Algorithm{AlgorithmHybrid, AlgorithmKMeans} {
		t.Run(string(alg), func(t *testing.T) {
			cfg := ClusterConfig{Algorithm: alg, Seed: 4242}
			a, err := Cluster(points, 6, cfg)
			if err != nil {
				t.Fatalf("first run failed: %v", err)
			}
			b, err := Cluster(points, 6, cfg)
			if err != nil {
				t.Fatalf("second run failed: %v", err)
			}

			for i := range a.Centroids {
				if a.Centroids[i] != b.Centroids[i] {
					t.Fatalf("centroid %d differs between runs: %v vs %v", i, a.Centroids[i], b.Centroids[i])
				}
			}
			if a.Converged != b.Converged {
				t.Error("convergence flag differs between runs")
			}
		})
	}
}

func TestClusterSeparatesGroups(t *testing.T) {
	res, err := Cluster(twoGroupPoints(400), 2, ClusterConfig{Algorithm: AlgorithmHybrid})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	var foundRed, foundBlue bool
	for _, c := range res.Centroids {
		if c[0] > 150 && c[1] < 100 && c[2] < 100 {
			foundRed = true
		}
		if c[0] < 100 && c[1] < 100 && c[2] > 150 {
			foundBlue = true
		}
	}
	if !foundRed || !foundBlue {
		t.Errorf("expected one red and one blue centroid, got %v", res.Centroids)
	}
}

func TestClusterCentroidsInRange(t *testing.T) {
	res, err := Cluster(twoGroupPoints(300), 5, ClusterConfig{})
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	for _, c := range res.Centroids {
		for ch := 0; ch < 3; ch++ {
			if c[ch] < 0 || c[ch] > 255 {
				t.Errorf("centroid channel out of range: %v", c)
			}
		}
	}
}

func TestClusterFastCardinality(t *testing.T) {
	res, err := Cluster(twoGroupPoints(300), 3, ClusterConfig{Algorithm: AlgorithmFast})
	if err != nil {
		t.Fatalf("Cluster(fast) failed: %v", err)
	}
	if len(res.Centroids) != 3 {
		t.Errorf("fast mode returned %d centroids, want 3", len(res.Centroids))
	}
}

func TestIsValidAlgorithm(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		if !IsValidAlgorithm(alg) {
			t.Errorf("IsValidAlgorithm(%s) = false", alg)
		}
	}
	if IsValidAlgorithm("octree") {
		t.Error("IsValidAlgorithm(octree) = true")
	}
}
