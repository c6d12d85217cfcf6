package colour

import (
	"fmt"
	"math/rand"
)

// Algorithm selects the clustering strategy used to reduce sampled points to
// a palette.
type Algorithm string

const (
	// AlgorithmHybrid seeds centroids from a block-wise density pass, then
	// refines with weighted k-means. The default.
	AlgorithmHybrid Algorithm = "hybrid"

	// AlgorithmKMeans skips density seeding and runs k-means++ directly on
	// the sampled points.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmFast delegates to a third-party k-means partitioner. Quick,
	// but it does not carry the determinism guarantee of the other modes.
	AlgorithmFast Algorithm = "fast"
)

// ValidAlgorithms returns the recognised algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmHybrid, AlgorithmKMeans, AlgorithmFast}
}

// IsValidAlgorithm checks whether alg is a recognised algorithm name.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ClusterConfig holds the tunables of the clustering engine. The zero value
// of any field falls back to its documented default.
type ClusterConfig struct {
	Algorithm     Algorithm
	MaxIterations int
	Convergence   float64
	BlockSize     int
	MinPts        int
	Seed          int64
}

// withDefaults fills unset fields.
func (c ClusterConfig) withDefaults() ClusterConfig {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmHybrid
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = defaultMaxIterations
	}
	if c.Convergence <= 0 {
		c.Convergence = defaultConvergence
	}
	if c.BlockSize <= 0 {
		c.BlockSize = defaultBlockSize
	}
	if c.MinPts <= 0 {
		c.MinPts = defaultMinPts
	}
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	return c
}

// ClusterResult is the outcome of a clustering run. Centroids always has
// exactly the requested length; Converged reports whether the refinement
// reached its movement threshold before hitting the iteration cap (a false
// value is best-effort output, not an error).
type ClusterResult struct {
	Centroids []ColorPoint
	Converged bool
}

// Cluster reduces points to exactly k representative colours. Results are
// bit-for-bit reproducible for a fixed seed, point order and k (except for
// AlgorithmFast). k may exceed the number of distinct colours, in which
// case duplicate centroids are legal, but not the number of points.
func Cluster(points []ColorPoint, k int, cfg ClusterConfig) (ClusterResult, error) {
	if len(points) == 0 {
		return ClusterResult{}, ErrNoPoints
	}
	if k < MinColours || k > MaxColours {
		return ClusterResult{}, fmt.Errorf("%w: %d", ErrInvalidColourCount, k)
	}
	if k > len(points) {
		return ClusterResult{}, fmt.Errorf("%w: %d colours from %d points", ErrTooFewPoints, k, len(points))
	}

	cfg = cfg.withDefaults()
	if !IsValidAlgorithm(cfg.Algorithm) {
		return ClusterResult{}, fmt.Errorf("unknown algorithm: %s (valid: %v)", cfg.Algorithm, ValidAlgorithms())
	}

	if cfg.Algorithm == AlgorithmFast {
		centroids, err := fastCluster(points, k)
		if err != nil {
			return ClusterResult{}, err
		}
		return ClusterResult{Centroids: centroids, Converged: true}, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	// Seed pool: density-derived candidates for hybrid mode, the raw points
	// otherwise. A pool smaller than k falls back to the points so that
	// k-means++ always has enough candidates.
	pool := points
	if cfg.Algorithm == AlgorithmHybrid {
		if seeds := densitySeeds(points, cfg.BlockSize, cfg.MinPts, rng); len(seeds) >= k {
			pool = seeds
		}
	}

	initial := kmeansPlusPlus(pool, k, rng)
	centroids, converged := kmeansRefine(points, initial, cfg.MaxIterations, cfg.Convergence, rng)

	return ClusterResult{Centroids: centroids, Converged: converged}, nil
}
