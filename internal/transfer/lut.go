package transfer

import "github.com/tintshift/tintshift/internal/colour"

// LUT defaults. Palettes above the colour cutoff skip the table and use a
// direct nearest-neighbour scan, a documented latency cliff.
const (
	defaultLUTSize       = 32
	defaultLUTMaxColours = 256
	minLUTSize           = 8
	maxLUTSize           = 128
)

// lutMapper resolves colours through a precomputed res³ cube over RGB
// space: each cell holds the final output colour for any input quantised
// into it, so per-pixel work is a single table load instead of an O(k)
// palette scan.
type lutMapper struct {
	res   int
	table []uint32
}

// newLUTMapper builds the cube for the given palette. out[i] is the packed
// output colour emitted for palette index i.
func newLUTMapper(pal colour.Palette, out []uint32, res int) *lutMapper {
	if res < minLUTSize || res > maxLUTSize {
		res = defaultLUTSize
	}

	m := &lutMapper{
		res:   res,
		table: make([]uint32, res*res*res),
	}

	cell := 256.0 / float64(res)
	for ri := 0; ri < res; ri++ {
		r := (float64(ri) + 0.5) * cell
		for gi := 0; gi < res; gi++ {
			g := (float64(gi) + 0.5) * cell
			base := (ri*res + gi) * res
			for bi := 0; bi < res; bi++ {
				b := (float64(bi) + 0.5) * cell
				idx := pal.NearestIndex(colour.ColorPoint{r, g, b})
				m.table[base+bi] = out[idx]
			}
		}
	}
	return m
}

func (m *lutMapper) Map(c uint32) uint32 {
	r := int(c>>16&0xff) * m.res / 256
	g := int(c>>8&0xff) * m.res / 256
	b := int(c&0xff) * m.res / 256
	return m.table[(r*m.res+g)*m.res+b]
}

// directMapper is the exact fallback for palettes too large for a LUT: a
// linear nearest-neighbour scan per pixel.
type directMapper struct {
	pal colour.Palette
	out []uint32
}

func newDirectMapper(pal colour.Palette, out []uint32) *directMapper {
	return &directMapper{pal: pal, out: out}
}

func (m *directMapper) Map(c uint32) uint32 {
	return m.out[m.pal.NearestIndex(colour.FromPacked(c))]
}
