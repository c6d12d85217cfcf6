package transfer

import "sync"

// gpuDevice is a scoped handle on a GPU compute context. Implementations
// run the pixel mapping on the device; Release must be called after each
// dispatch.
type gpuDevice interface {
	MapPixels(dst, src []uint32, m Mapper) error
	Release()
}

// gpuRuntime acquires the process-wide GPU context. It is nil unless a GPU
// runtime is linked into the binary, in which case it is installed from that
// runtime's init. Acquisition failure is never fatal: the backend reports
// itself unavailable, or falls back mid-call, and dispatch continues on the
// CPU tiers.
var gpuRuntime func() (gpuDevice, error)

// gpuBackend runs the mapping on a GPU when a runtime is linked and its
// probe succeeds. The device handle is acquired and released around each
// call.
type gpuBackend struct {
	probeOnce sync.Once
	usable    bool
	fallback  Backend
}

func newGPUBackend() *gpuBackend {
	return &gpuBackend{fallback: newVectorBackend()}
}

func (b *gpuBackend) Name() string { return BackendGPU }

// Available probes the runtime once per process.
func (b *gpuBackend) Available() bool {
	b.probeOnce.Do(func() {
		if gpuRuntime == nil {
			return
		}
		dev, err := gpuRuntime()
		if err != nil {
			return
		}
		dev.Release()
		b.usable = true
	})
	return b.usable
}

func (b *gpuBackend) MapPixels(dst, src []uint32, m Mapper) {
	if !b.Available() {
		b.fallback.MapPixels(dst, src, m)
		return
	}
	dev, err := gpuRuntime()
	if err != nil {
		b.fallback.MapPixels(dst, src, m)
		return
	}
	defer dev.Release()
	if err := dev.MapPixels(dst, src, m); err != nil {
		b.fallback.MapPixels(dst, src, m)
	}
}
