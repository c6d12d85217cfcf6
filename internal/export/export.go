// Package export formats palettes for external consumers: hex and RGB
// listings, JSON, GIMP palette files, CSV and swatch images. The core
// Palette type stays format-free; everything here works on its public
// accessors.
package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/tintshift/tintshift/internal/colour"
)

// Format names accepted by Render.
const (
	FormatHex  = "hex"
	FormatRGB  = "rgb"
	FormatJSON = "json"
	FormatGPL  = "gpl"
	FormatCSV  = "csv"
)

// ValidFormats returns the recognised output format names.
func ValidFormats() []string {
	return []string{FormatHex, FormatRGB, FormatJSON, FormatGPL, FormatCSV}
}

// Render formats a palette in the named format.
func Render(p colour.Palette, format, name string) (string, error) {
	rgb := p.ToSpace(colour.SpaceRGB)
	switch format {
	case FormatHex:
		return Hex(rgb), nil
	case FormatRGB:
		return RGB(rgb), nil
	case FormatJSON:
		out, err := JSON(rgb)
		return string(out), err
	case FormatGPL:
		return GPL(rgb, name), nil
	case FormatCSV:
		return CSV(rgb), nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %v)", format, ValidFormats())
	}
}

// Hex returns one hex colour per line.
func Hex(p colour.Palette) string {
	var b strings.Builder
	for i := 0; i < p.Len(); i++ {
		fmt.Fprintln(&b, p.Hex(i))
	}
	return b.String()
}

// RGB returns one "rgb(r, g, b)" entry per line.
func RGB(p colour.Palette) string {
	var b strings.Builder
	for i := 0; i < p.Len(); i++ {
		c := p.At(i).Packed()
		fmt.Fprintf(&b, "rgb(%d, %d, %d)\n", c>>16&0xff, c>>8&0xff, c&0xff)
	}
	return b.String()
}

// colourJSON is one palette entry in JSON output.
type colourJSON struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}

// paletteJSON is the JSON output document.
type paletteJSON struct {
	Count   int          `json:"count"`
	Colours []colourJSON `json:"colours"`
}

// JSON returns the palette as an indented JSON document.
func JSON(p colour.Palette) ([]byte, error) {
	doc := paletteJSON{Count: p.Len()}
	for i := 0; i < p.Len(); i++ {
		c := p.At(i).Packed()
		doc.Colours = append(doc.Colours, colourJSON{
			Hex: p.Hex(i),
			R:   uint8(c >> 16),
			G:   uint8(c >> 8),
			B:   uint8(c),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// GPL returns the palette as a GIMP palette file.
func GPL(p colour.Palette, name string) string {
	if name == "" {
		name = "tintshift palette"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "GIMP Palette\nName: %s\nColumns: %d\n#\n", name, min(p.Len(), 16))
	for i := 0; i < p.Len(); i++ {
		c := p.At(i).Packed()
		fmt.Fprintf(&b, "%3d %3d %3d\tcolour-%d\n", c>>16&0xff, c>>8&0xff, c&0xff, i)
	}
	return b.String()
}

// CSV returns the palette as "index,hex,r,g,b" rows with a header.
func CSV(p colour.Palette) string {
	var b strings.Builder
	b.WriteString("index,hex,r,g,b\n")
	for i := 0; i < p.Len(); i++ {
		c := p.At(i).Packed()
		fmt.Fprintf(&b, "%d,%s,%d,%d,%d\n", i, p.Hex(i), c>>16&0xff, c>>8&0xff, c&0xff)
	}
	return b.String()
}

// ParseHex parses a "#rrggbb" string into an RGB ColorPoint.
func ParseHex(s string) (colour.ColorPoint, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colour.ColorPoint{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return colour.ColorPoint{c.R * 255.0, c.G * 255.0, c.B * 255.0}, nil
}

// SwatchImage renders the palette as a horizontal strip of cellSize-pixel
// squares, ordered by hue so related colours sit together.
func SwatchImage(p colour.Palette, cellSize int) *image.NRGBA {
	if cellSize <= 0 {
		cellSize = 32
	}
	rgb := p.ToSpace(colour.SpaceRGB)

	type hued struct {
		c   uint32
		hue float64
	}
	cells := make([]hued, rgb.Len())
	for i := range cells {
		c := rgb.At(i).Packed()
		cf := colorful.Color{
			R: float64(c>>16&0xff) / 255.0,
			G: float64(c>>8&0xff) / 255.0,
			B: float64(c&0xff) / 255.0,
		}
		h, _, _ := cf.Hsv()
		cells[i] = hued{c: c, hue: h}
	}
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].hue < cells[j].hue })

	img := image.NewNRGBA(image.Rect(0, 0, cellSize*len(cells), cellSize))
	for i, cell := range cells {
		col := color.NRGBA{
			R: uint8(cell.c >> 16),
			G: uint8(cell.c >> 8),
			B: uint8(cell.c),
			A: 255,
		}
		for y := 0; y < cellSize; y++ {
			for x := i * cellSize; x < (i+1)*cellSize; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
	return img
}
