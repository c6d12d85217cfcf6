// Package transfer orchestrates palette extraction from images and the
// resynthesis/posterize passes that rewrite an image through a palette
// mapping, including LUT acceleration, tiled processing of large images and
// dispatch across the scalar, vectorized and GPU execution backends.
package transfer

import "sync"

// Mapper maps a packed 0xRRGGBB colour to its replacement colour. A Mapper
// is immutable once built and safe for concurrent use, which is what allows
// backends to shard pixel work freely.
type Mapper interface {
	Map(c uint32) uint32
}

// Backend applies a Mapper over a slice of packed pixels. Every backend must
// produce results identical to the reference backend within one unit per
// channel for the same Mapper; per-pixel work has no cross-element
// dependency, so execution order never matters.
type Backend interface {
	// Name identifies the backend ("scalar", "vector", "gpu").
	Name() string

	// Available reports whether the backend can run on this process.
	Available() bool

	// MapPixels writes m.Map(src[i]) to dst[i] for every pixel. dst and src
	// may alias.
	MapPixels(dst, src []uint32, m Mapper)
}

// Backend preference names accepted by SelectBackend.
const (
	BackendAuto   = "auto"
	BackendScalar = "scalar"
	BackendVector = "vector"
	BackendGPU    = "gpu"
)

var (
	probeOnce sync.Once
	tiers     []Backend
)

// probeBackends builds the dispatch order once per process: GPU first when
// its runtime probe succeeds, then the vectorized CPU path, then the scalar
// reference. The set is immutable after init.
func probeBackends() []Backend {
	probeOnce.Do(func() {
		candidates := []Backend{
			newGPUBackend(),
			newVectorBackend(),
			newScalarBackend(),
		}
		for _, b := range candidates {
			if b.Available() {
				tiers = append(tiers, b)
			}
		}
	})
	return tiers
}

// SelectBackend returns the backend for the given preference name. An
// unknown or unavailable preference, or "auto", selects the highest
// available tier. The scalar reference is always available, so selection
// never fails.
func SelectBackend(pref string) Backend {
	available := probeBackends()
	if pref != "" && pref != BackendAuto {
		for _, b := range available {
			if b.Name() == pref {
				return b
			}
		}
	}
	return available[0]
}
