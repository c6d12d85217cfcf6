package colour

import (
	"math"
	"math/rand"
)

// Density seeding parameters. Blocks keep the DBSCAN pass quadratic only in
// the block size, and the eps sub-sample bounds the cost of the neighbour
// distance estimate.
const (
	defaultBlockSize = 1024
	defaultMinPts    = 8
	epsSampleSize    = 64
)

const (
	labelUnvisited = 0
	labelNoise     = -1
)

// densitySeeds discovers candidate centroid seeds by running a density-based
// grouping pass over fixed-size blocks of the sampled points. Within each
// block eps is estimated from the minPts-th nearest-neighbour distance of a
// random sub-sample, so no manual eps tuning is needed. The centroid of each
// dense group becomes a candidate seed; noise points contribute no seeds.
func densitySeeds(points []ColorPoint, blockSize, minPts int, rng *rand.Rand) []ColorPoint {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	if minPts <= 0 {
		minPts = defaultMinPts
	}

	var seeds []ColorPoint
	for start := 0; start < len(points); start += blockSize {
		end := min(start+blockSize, len(points))
		block := points[start:end]
		if len(block) < minPts {
			continue
		}
		eps := estimateEps(block, minPts, rng)
		if eps <= 0 {
			// Degenerate block (all points identical): a single seed.
			seeds = append(seeds, block[0])
			continue
		}
		seeds = append(seeds, dbscanCentroids(block, eps, minPts)...)
	}
	return seeds
}

// estimateEps returns the mean distance to the minPts-th nearest neighbour
// over a random sub-sample of the block.
func estimateEps(block []ColorPoint, minPts int, rng *rand.Rand) float64 {
	sampleN := min(epsSampleSize, len(block))

	total := 0.0
	counted := 0
	dists := make([]float64, 0, len(block))
	for s := 0; s < sampleN; s++ {
		i := rng.Intn(len(block))
		dists = dists[:0]
		for j := range block {
			if j == i {
				continue
			}
			dists = append(dists, block[i].SquaredDistance(block[j]))
		}
		if len(dists) < minPts {
			continue
		}
		kth := kthSmallest(dists, minPts-1)
		total += math.Sqrt(kth)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// kthSmallest returns the k-th smallest value (0-based) using quickselect.
// The slice is reordered in place.
func kthSmallest(vals []float64, k int) float64 {
	lo, hi := 0, len(vals)-1
	for lo < hi {
		pivot := vals[(lo+hi)/2]
		i, j := lo, hi
		for i <= j {
			for vals[i] < pivot {
				i++
			}
			for vals[j] > pivot {
				j--
			}
			if i <= j {
				vals[i], vals[j] = vals[j], vals[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j
		} else if k >= i {
			lo = i
		} else {
			break
		}
	}
	return vals[k]
}

// dbscanCentroids runs a single DBSCAN pass over the block and returns the
// centroid of every discovered cluster. Points with fewer than minPts
// neighbours within eps that are not reachable from a core point are noise.
func dbscanCentroids(block []ColorPoint, eps float64, minPts int) []ColorPoint {
	epsSq := eps * eps
	labels := make([]int, len(block))
	clusterID := 0

	neighbours := func(i int) []int {
		var out []int
		for j := range block {
			if j != i && block[i].SquaredDistance(block[j]) <= epsSq {
				out = append(out, j)
			}
		}
		return out
	}

	for i := range block {
		if labels[i] != labelUnvisited {
			continue
		}
		nbs := neighbours(i)
		if len(nbs) < minPts {
			labels[i] = labelNoise
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Expand the cluster through density-reachable points.
		queue := append([]int(nil), nbs...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == labelNoise {
				labels[j] = clusterID // border point
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = clusterID
			jnbs := neighbours(j)
			if len(jnbs) >= minPts {
				queue = append(queue, jnbs...)
			}
		}
	}

	if clusterID == 0 {
		return nil
	}

	sums := make([]ColorPoint, clusterID)
	counts := make([]int, clusterID)
	for i, label := range labels {
		if label <= 0 {
			continue
		}
		c := label - 1
		sums[c][0] += block[i][0]
		sums[c][1] += block[i][1]
		sums[c][2] += block[i][2]
		counts[c]++
	}

	centroids := make([]ColorPoint, 0, clusterID)
	for c := range sums {
		if counts[c] == 0 {
			continue
		}
		n := float64(counts[c])
		centroids = append(centroids, ColorPoint{
			sums[c][0] / n,
			sums[c][1] / n,
			sums[c][2] / n,
		})
	}
	return centroids
}
