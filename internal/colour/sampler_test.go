package colour

import "testing"

func makeTestPoints(n int) []ColorPoint {
	points := make([]ColorPoint, n)
	for i := range points {
		points[i] = ColorPoint{float64(i % 256), float64((i * 3) % 256), float64((i * 11) % 256)}
	}
	return points
}

func TestReservoirSize(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		maxSize int
		want    int
	}{
		{name: "input smaller than cap", n: 10, maxSize: 100, want: 10},
		{name: "input equal to cap", n: 100, maxSize: 100, want: 100},
		{name: "input above cap", n: 5000, maxSize: 100, want: 100},
		{name: "zero cap", n: 10, maxSize: 0, want: 0},
		{name: "empty input", n: 0, maxSize: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reservoir(makeTestPoints(tt.n), tt.maxSize, DefaultSeed)
			if len(got) != tt.want {
				t.Errorf("Reservoir returned %d points, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReservoirDeterministic(t *testing.T) {
	points := makeTestPoints(5000)

	a := Reservoir(points, 200, 12345)
	b := Reservoir(points, 200, 12345)

	if len(a) != len(b) {
		t.Fatalf("sample sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("samples differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestReservoirSeedChangesSample(t *testing.T) {
	points := makeTestPoints(5000)

	a := Reservoir(points, 200, 1)
	b := Reservoir(points, 200, 2)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical samples")
	}
}

func TestReservoirSampleIsFromInput(t *testing.T) {
	points := makeTestPoints(1000)
	seen := make(map[ColorPoint]bool, len(points))
	for _, p := range points {
		seen[p] = true
	}

	for _, p := range Reservoir(points, 100, DefaultSeed) {
		if !seen[p] {
			t.Fatalf("sampled point %v not from input", p)
		}
	}
}

func TestReservoirSmallInputPreservesOrder(t *testing.T) {
	points := makeTestPoints(10)
	got := Reservoir(points, 100, DefaultSeed)
	for i := range points {
		if got[i] != points[i] {
			t.Fatalf("expected input preserved in order at %d: %v vs %v", i, got[i], points[i])
		}
	}
}

func TestReservoirStream(t *testing.T) {
	// The streaming form must agree with the slice form for the same seed.
	points := makeTestPoints(3000)
	fromSlice := Reservoir(points, 50, 99)
	fromStream := ReservoirStream(len(points), 50, 99, func(i int) ColorPoint {
		return points[i]
	})

	if len(fromSlice) != len(fromStream) {
		t.Fatalf("sizes differ: %d vs %d", len(fromSlice), len(fromStream))
	}
	for i := range fromSlice {
		if fromSlice[i] != fromStream[i] {
			t.Fatalf("results differ at %d", i)
		}
	}
}
