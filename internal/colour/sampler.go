package colour

import "math/rand"

// DefaultSeed is used whenever a caller does not supply an explicit seed.
// A fixed value, not the clock, so batch runs stay reproducible.
const DefaultSeed int64 = 0x7464

// Reservoir returns a uniform random sample of at most maxSize points using
// reservoir sampling (algorithm R). The result is deterministic for a given
// seed and input order. When the input already fits, a copy of it is
// returned unchanged.
func Reservoir(points []ColorPoint, maxSize int, seed int64) []ColorPoint {
	if maxSize <= 0 {
		return nil
	}
	n := len(points)
	return ReservoirStream(n, maxSize, seed, func(i int) ColorPoint {
		return points[i]
	})
}

// ReservoirStream is the streaming form of Reservoir: it visits n points
// through the at callback in index order and never holds more than maxSize
// points, so arbitrarily large pixel sources can be sampled without
// materialising them.
func ReservoirStream(n, maxSize int, seed int64, at func(i int) ColorPoint) []ColorPoint {
	if maxSize <= 0 || n <= 0 {
		return nil
	}
	if maxSize > n {
		maxSize = n
	}

	reservoir := make([]ColorPoint, maxSize)
	for i := 0; i < maxSize; i++ {
		reservoir[i] = at(i)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := maxSize; i < n; i++ {
		j := rng.Intn(i + 1)
		if j < maxSize {
			reservoir[j] = at(i)
		}
	}

	return reservoir
}
