package image

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality is the encoder quality for JPEG output.
const jpegQuality = 92

// Save encodes the image to path, choosing the codec from the file
// extension (.png, .jpg/.jpeg). Unknown extensions default to PNG.
func Save(m *RGBImage, path string) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	file, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, m.ToNRGBA(), &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(file, m.ToNRGBA())
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
