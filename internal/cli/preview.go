package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tintshift/tintshift/internal/colour"
)

// printPalettePreview writes coloured swatch blocks for the palette using
// 24-bit ANSI escapes. Swatches are skipped when stdout is not a terminal.
func printPalettePreview(w io.Writer, p colour.Palette) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	rgb := p.ToSpace(colour.SpaceRGB)
	for i := 0; i < rgb.Len(); i++ {
		c := rgb.At(i).Packed()
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm   \x1b[0m", c>>16&0xff, c>>8&0xff, c&0xff)
		if (i+1)%16 == 0 {
			fmt.Fprintln(w)
		}
	}
	if rgb.Len()%16 != 0 {
		fmt.Fprintln(w)
	}
}

// printPaletteTable writes an index/hex/rgb/luma table for the palette.
func printPaletteTable(w io.Writer, p colour.Palette) {
	rgb := p.ToSpace(colour.SpaceRGB)
	table := NewTable([]string{"#", "HEX", "RGB", "LUMA"})
	for i := 0; i < rgb.Len(); i++ {
		c := rgb.At(i).Packed()
		table.AddRow([]string{
			fmt.Sprintf("%d", i),
			rgb.Hex(i),
			fmt.Sprintf("%d,%d,%d", c>>16&0xff, c>>8&0xff, c&0xff),
			fmt.Sprintf("%.1f", colour.Luma(rgb.At(i))),
		})
	}
	fmt.Fprint(w, table.Render())
}
