package colour

import (
	"math"
	"testing"
)

// Reference pairs from the published CIEDE2000 implementation notes
// (Sharma, Wu and Dalal, 2005).
func TestDeltaE2000ReferencePairs(t *testing.T) {
	tests := []struct {
		name string
		lab1 ColorPoint
		lab2 ColorPoint
		want float64
	}{
		{name: "pair 1", lab1: ColorPoint{50, 2.6772, -79.7751}, lab2: ColorPoint{50, 0, -82.7485}, want: 2.0425},
		{name: "pair 2", lab1: ColorPoint{50, 3.1571, -77.2803}, lab2: ColorPoint{50, 0, -82.7485}, want: 2.8615},
		{name: "pair 3", lab1: ColorPoint{50, 2.8361, -74.0200}, lab2: ColorPoint{50, 0, -82.7485}, want: 3.4412},
		{name: "pair 4", lab1: ColorPoint{50, -1.3802, -84.2814}, lab2: ColorPoint{50, 0, -82.7485}, want: 1.0000},
		{name: "pair 7", lab1: ColorPoint{50, 0, 0}, lab2: ColorPoint{50, -1, 2}, want: 2.3669},
		{name: "pair 9", lab1: ColorPoint{50, 2.4900, -0.0010}, lab2: ColorPoint{50, -2.4900, 0.0009}, want: 7.1792},
		{name: "pair 25", lab1: ColorPoint{60.2574, -34.0099, 36.2677}, lab2: ColorPoint{60.4626, -34.1751, 39.4387}, want: 1.2644},
		{name: "pair 31", lab1: ColorPoint{2.0776, 0.0795, -1.1350}, lab2: ColorPoint{0.9033, -0.0636, -0.5514}, want: 0.9082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeltaE2000(tt.lab1, tt.lab2)
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("DeltaE2000(%v, %v) = %f, want %f", tt.lab1, tt.lab2, got, tt.want)
			}
		})
	}
}

func TestDeltaE2000Symmetry(t *testing.T) {
	pairs := [][2]ColorPoint{
		{{50, 2.6772, -79.7751}, {50, 0, -82.7485}},
		{{30, 10, -20}, {70, -15, 40}},
		{{0, 0, 0}, {100, 0, 0}},
	}
	for _, p := range pairs {
		ab := DeltaE2000(p[0], p[1])
		ba := DeltaE2000(p[1], p[0])
		if ab != ba {
			t.Errorf("DeltaE2000 not symmetric: %f vs %f for %v", ab, ba, p)
		}
	}
}

func TestDeltaE2000Identity(t *testing.T) {
	points := []ColorPoint{
		{50, 2.6772, -79.7751},
		{0, 0, 0},
		{100, 0, 0},
		{53.5, -12.2, 30.1},
	}
	for _, p := range points {
		if d := DeltaE2000(p, p); d != 0 {
			t.Errorf("DeltaE2000(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

// Zero-chroma inputs exercise the hue-term conventions: no division by zero
// and a finite, non-negative result.
func TestDeltaE2000ZeroChroma(t *testing.T) {
	greys := []ColorPoint{{0, 0, 0}, {50, 0, 0}, {100, 0, 0}}
	for _, a := range greys {
		for _, b := range greys {
			d := DeltaE2000(a, b)
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				t.Errorf("DeltaE2000(%v, %v) = %f, want finite non-negative", a, b, d)
			}
		}
	}
}
