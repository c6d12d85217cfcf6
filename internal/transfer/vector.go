package transfer

import (
	"runtime"
	"sync"
)

// vectorParallelThreshold is the pixel count below which sharding overhead
// outweighs the gain and the work runs on a single goroutine.
const vectorParallelThreshold = 1 << 15

// vectorBackend shards the pixel slice across worker goroutines, one per
// logical CPU. Mappers are immutable, so the shards share one without
// synchronisation and the output is identical to the scalar path.
type vectorBackend struct {
	workers int
}

func newVectorBackend() *vectorBackend {
	return &vectorBackend{workers: runtime.GOMAXPROCS(0)}
}

func (b *vectorBackend) Name() string { return BackendVector }

// Available reports whether more than one worker is useful here.
func (b *vectorBackend) Available() bool { return b.workers > 1 }

func (b *vectorBackend) MapPixels(dst, src []uint32, m Mapper) {
	if len(src) < vectorParallelThreshold {
		for i, c := range src {
			dst[i] = m.Map(c)
		}
		return
	}

	chunk := (len(src) + b.workers - 1) / b.workers

	var wg sync.WaitGroup
	for start := 0; start < len(src); start += chunk {
		end := min(start+chunk, len(src))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				dst[i] = m.Map(src[i])
			}
		}(start, end)
	}
	wg.Wait()
}
