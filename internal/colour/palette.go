package colour

import (
	"fmt"
	"sort"
	"strings"
)

// Palette is an ordered, fixed-size set of colours produced by clustering.
// It is immutable once constructed and safe to share across concurrent
// operations: the constructor copies its input and accessors never expose
// the backing slice.
type Palette struct {
	colours []ColorPoint
	space   Space
}

// NewPalette creates a Palette from the given colours. The slice is copied.
func NewPalette(colours []ColorPoint, space Space) Palette {
	cp := make([]ColorPoint, len(colours))
	copy(cp, colours)
	return Palette{colours: cp, space: space}
}

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p.colours)
}

// Space returns the colour space the palette is expressed in.
func (p Palette) Space() Space {
	return p.space
}

// At returns the colour at index i.
func (p Palette) At(i int) ColorPoint {
	return p.colours[i]
}

// Colours returns a copy of the palette's colours in creation order.
func (p Palette) Colours() []ColorPoint {
	cp := make([]ColorPoint, len(p.colours))
	copy(cp, p.colours)
	return cp
}

// ToSpace returns the palette converted to the given space.
func (p Palette) ToSpace(space Space) Palette {
	if space == p.space {
		return p
	}
	out := make([]ColorPoint, len(p.colours))
	for i, c := range p.colours {
		out[i] = Convert(c, p.space, space)
	}
	return Palette{colours: out, space: space}
}

// NearestIndex returns the index of the palette colour closest to c by
// squared Euclidean distance. Ties resolve to the lowest index. The palette
// must not be empty.
func (p Palette) NearestIndex(c ColorPoint) int {
	best := 0
	bestDist := p.colours[0].SquaredDistance(c)
	for i := 1; i < len(p.colours); i++ {
		if d := p.colours[i].SquaredDistance(c); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Luma returns the Rec. 601 luma of a point. The formula assumes RGB
// channels; callers wanting a meaningful ordering convert to RGB first.
func Luma(c ColorPoint) float64 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}

// SortByLuminance returns a copy of the palette stably sorted from darkest
// to lightest by Luma. The receiver is unchanged.
func (p Palette) SortByLuminance() Palette {
	out := p.Colours()
	sort.SliceStable(out, func(i, j int) bool {
		return Luma(out[i]) < Luma(out[j])
	})
	return Palette{colours: out, space: p.space}
}

// Hex returns the colour at index i as a hex string ("#rrggbb"). The palette
// must be in RGB space for the result to be meaningful.
func (p Palette) Hex(i int) string {
	return fmt.Sprintf("#%06x", p.colours[i].Packed())
}

// String returns a short human-readable description of the palette.
func (p Palette) String() string {
	if len(p.colours) == 0 {
		return "empty palette"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "palette (%d colours, %s):", len(p.colours), p.space)
	for i := range p.colours {
		if p.space == SpaceRGB {
			fmt.Fprintf(&b, " %s", p.Hex(i))
		} else {
			c := p.colours[i]
			fmt.Fprintf(&b, " (%.1f,%.1f,%.1f)", c[0], c[1], c[2])
		}
	}
	return b.String()
}
