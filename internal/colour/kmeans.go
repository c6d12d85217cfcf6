package colour

import "math/rand"

// Refinement defaults. Movement is measured as the maximum centroid shift
// between iterations, in the units of the active colour space.
const (
	defaultMaxIterations = 50
	defaultConvergence   = 0.05
)

// kmeansPlusPlus picks k initial centroids from pool using squared-distance
// weighted sampling: each not-yet-chosen candidate is selected with
// probability proportional to its squared distance to the nearest centroid
// chosen so far. Deterministic for a given rng state.
func kmeansPlusPlus(pool []ColorPoint, k int, rng *rand.Rand) []ColorPoint {
	centroids := make([]ColorPoint, 0, k)
	centroids = append(centroids, pool[rng.Intn(len(pool))])

	// Distance of every candidate to its nearest chosen centroid; updated
	// incrementally as centroids are added.
	minDist := make([]float64, len(pool))
	for i, p := range pool {
		minDist[i] = p.SquaredDistance(centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range minDist {
			total += d
		}

		if total == 0 {
			// Every candidate coincides with a chosen centroid; the data has
			// fewer distinct colours than k, duplicates are legal.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		chosen := len(pool) - 1
		cumulative := 0.0
		for i, d := range minDist {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, pool[chosen])

		for i, p := range pool {
			if d := p.SquaredDistance(pool[chosen]); d < minDist[i] {
				minDist[i] = d
			}
		}
	}

	return centroids
}

// kmeansRefine runs Lloyd iterations from the given initial centroids:
// assign every point to its exact nearest centroid (squared Euclidean, ties
// to the lowest index), recompute each centroid as the mean of its points,
// and reseed any emptied centroid from a point chosen through rng. Stops
// when the maximum centroid movement drops below convergence or after
// maxIterations, whichever comes first. The returned flag reports whether
// the movement threshold was reached.
func kmeansRefine(points, initial []ColorPoint, maxIterations int, convergence float64, rng *rand.Rand) ([]ColorPoint, bool) {
	k := len(initial)
	centroids := append([]ColorPoint(nil), initial...)
	assignments := make([]int, len(points))
	converged := false

	for iter := 0; iter < maxIterations; iter++ {
		for i, p := range points {
			assignments[i] = nearestCentroid(p, centroids)
		}

		newCentroids := recalculateCentroids(points, assignments, k, rng)

		maxMovement := 0.0
		for i := range centroids {
			if d := centroids[i].SquaredDistance(newCentroids[i]); d > maxMovement {
				maxMovement = d
			}
		}
		centroids = newCentroids

		if maxMovement < convergence*convergence {
			converged = true
			break
		}
	}

	return centroids, converged
}

// nearestCentroid returns the index of the centroid nearest to p. Strict
// less-than keeps ties on the lowest index.
func nearestCentroid(p ColorPoint, centroids []ColorPoint) int {
	nearest := 0
	best := p.SquaredDistance(centroids[0])
	for i := 1; i < len(centroids); i++ {
		if d := p.SquaredDistance(centroids[i]); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids returns the mean of each cluster's assigned points.
// A cluster with no assigned points is reinitialised from a point drawn
// through rng, keeping the result deterministic for a fixed seed.
func recalculateCentroids(points []ColorPoint, assignments []int, k int, rng *rand.Rand) []ColorPoint {
	sums := make([]ColorPoint, k)
	counts := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c][0] += p[0]
		sums[c][1] += p[1]
		sums[c][2] += p[2]
		counts[c]++
	}

	centroids := make([]ColorPoint, k)
	for i := range centroids {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = ColorPoint{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
		} else {
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
