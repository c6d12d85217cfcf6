// Tintshift - colour palette extraction and transfer
//
// Tintshift extracts colour palettes from images by clustering in a
// perceptual colour space, and transfers them between images.
package main

import (
	"os"

	"github.com/tintshift/tintshift/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
