package transfer

import (
	"errors"
	"math/rand"
	"testing"
)

// shiftMapper is a trivial test mapper with a cheap, order-independent
// output.
type shiftMapper struct{}

func (shiftMapper) Map(c uint32) uint32 { return (c + 1) & 0xffffff }

func randomPixels(n int, seed int64) []uint32 {
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint32, n)
	for i := range pix {
		pix[i] = rng.Uint32() & 0xffffff
	}
	return pix
}

func TestScalarBackend(t *testing.T) {
	b := newScalarBackend()
	if !b.Available() {
		t.Fatal("scalar backend must always be available")
	}
	if b.Name() != BackendScalar {
		t.Errorf("Name() = %s, want %s", b.Name(), BackendScalar)
	}

	src := randomPixels(100, 1)
	dst := make([]uint32, len(src))
	b.MapPixels(dst, src, shiftMapper{})
	for i := range src {
		if dst[i] != (src[i]+1)&0xffffff {
			t.Fatalf("pixel %d: got %06x, want %06x", i, dst[i], (src[i]+1)&0xffffff)
		}
	}
}

func TestVectorMatchesScalar(t *testing.T) {
	// Sizes straddling the sharding threshold, including awkward remainders.
	sizes := []int{0, 1, 1000, vectorParallelThreshold - 1, vectorParallelThreshold, vectorParallelThreshold*3 + 7}

	scalar := newScalarBackend()
	vector := newVectorBackend()

	for _, n := range sizes {
		src := randomPixels(n, int64(n))
		want := make([]uint32, n)
		got := make([]uint32, n)

		scalar.MapPixels(want, src, shiftMapper{})
		vector.MapPixels(got, src, shiftMapper{})

		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("n=%d pixel %d: vector %06x, scalar %06x", n, i, got[i], want[i])
			}
		}
	}
}

func TestVectorInPlace(t *testing.T) {
	src := randomPixels(vectorParallelThreshold*2, 9)
	want := make([]uint32, len(src))
	newScalarBackend().MapPixels(want, src, shiftMapper{})

	newVectorBackend().MapPixels(src, src, shiftMapper{})
	for i := range want {
		if src[i] != want[i] {
			t.Fatalf("in-place pixel %d: got %06x, want %06x", i, src[i], want[i])
		}
	}
}

func TestSelectBackend(t *testing.T) {
	if got := SelectBackend(BackendScalar).Name(); got != BackendScalar {
		t.Errorf("SelectBackend(scalar) = %s", got)
	}

	auto := SelectBackend(BackendAuto)
	if auto == nil || !auto.Available() {
		t.Fatal("auto selection must yield an available backend")
	}

	// Unknown names fall through to the best available tier.
	if SelectBackend("quantum").Name() != auto.Name() {
		t.Error("unknown preference should select the auto tier")
	}
	if SelectBackend("").Name() != auto.Name() {
		t.Error("empty preference should select the auto tier")
	}
}

func TestGPUBackendUnavailableWithoutRuntime(t *testing.T) {
	if gpuRuntime != nil {
		t.Skip("a GPU runtime is linked into this test binary")
	}

	b := newGPUBackend()
	if b.Available() {
		t.Fatal("GPU backend reported available without a runtime")
	}

	// Dispatch must still succeed through the CPU fallback.
	src := randomPixels(500, 3)
	dst := make([]uint32, len(src))
	b.MapPixels(dst, src, shiftMapper{})
	for i := range src {
		if dst[i] != (src[i]+1)&0xffffff {
			t.Fatalf("fallback pixel %d: got %06x", i, dst[i])
		}
	}
}

// fakeGPUDevice runs the mapping on the CPU while counting dispatches, or
// fails on demand to exercise the fallback path.
type fakeGPUDevice struct {
	calls *int
	fail  bool
}

func (d *fakeGPUDevice) MapPixels(dst, src []uint32, m Mapper) error {
	if d.fail {
		return errors.New("device lost")
	}
	*d.calls++
	for i, c := range src {
		dst[i] = m.Map(c)
	}
	return nil
}

func (d *fakeGPUDevice) Release() {}

func TestGPUBackendDispatchesToRuntime(t *testing.T) {
	calls := 0
	prev := gpuRuntime
	gpuRuntime = func() (gpuDevice, error) { return &fakeGPUDevice{calls: &calls}, nil }
	defer func() { gpuRuntime = prev }()

	b := newGPUBackend()
	if !b.Available() {
		t.Fatal("GPU backend unavailable despite an installed runtime")
	}

	src := randomPixels(200, 5)
	dst := make([]uint32, len(src))
	b.MapPixels(dst, src, shiftMapper{})
	if calls != 1 {
		t.Errorf("device dispatched %d times, want 1", calls)
	}
	for i := range src {
		if dst[i] != (src[i]+1)&0xffffff {
			t.Fatalf("device pixel %d: got %06x", i, dst[i])
		}
	}
}

func TestGPUBackendFallsBackOnDeviceError(t *testing.T) {
	calls := 0
	prev := gpuRuntime
	gpuRuntime = func() (gpuDevice, error) { return &fakeGPUDevice{calls: &calls, fail: true}, nil }
	defer func() { gpuRuntime = prev }()

	b := newGPUBackend()
	src := randomPixels(200, 6)
	dst := make([]uint32, len(src))
	b.MapPixels(dst, src, shiftMapper{})

	// The device failed, so the CPU fallback must have produced the output.
	for i := range src {
		if dst[i] != (src[i]+1)&0xffffff {
			t.Fatalf("fallback pixel %d: got %06x", i, dst[i])
		}
	}
}
