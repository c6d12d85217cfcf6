// Package image provides the packed RGB image buffer the transfer engine
// operates on, and utilities for loading and saving images on its boundary.
package image

import (
	"fmt"
	"image"
	"image/color"
)

// RGBImage is a width×height raster of packed 0xRRGGBB pixels stored
// row-major in a single slice. It is the only pixel representation the core
// engine reads or writes; codecs and file formats stay outside.
type RGBImage struct {
	width  int
	height int
	pix    []uint32
}

// NewRGB creates an all-black image. Dimensions must be positive.
func NewRGB(width, height int) (*RGBImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	return &RGBImage{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}, nil
}

// Width returns the image width in pixels.
func (m *RGBImage) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *RGBImage) Height() int { return m.height }

// At returns the packed 0xRRGGBB pixel at (x, y).
func (m *RGBImage) At(x, y int) uint32 {
	return m.pix[y*m.width+x]
}

// Set writes the packed 0xRRGGBB pixel at (x, y).
func (m *RGBImage) Set(x, y int, c uint32) {
	m.pix[y*m.width+x] = c & 0xffffff
}

// Pix exposes the backing pixel slice, row-major. Rows can be sliced out of
// it directly, which is how the transfer engine hands tile bands to a
// backend without copying.
func (m *RGBImage) Pix() []uint32 { return m.pix }

// Rows returns the pixels of rows [y0, y1) as a sub-slice of the backing
// store.
func (m *RGBImage) Rows(y0, y1 int) []uint32 {
	return m.pix[y0*m.width : y1*m.width]
}

// Clone returns a deep copy.
func (m *RGBImage) Clone() *RGBImage {
	pix := make([]uint32, len(m.pix))
	copy(pix, m.pix)
	return &RGBImage{width: m.width, height: m.height, pix: pix}
}

// FromImage converts any stdlib image into an RGBImage, discarding alpha.
func FromImage(img image.Image) (*RGBImage, error) {
	bounds := img.Bounds()
	out, err := NewRGB(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.pix[i] = (r>>8)<<16 | (g>>8)<<8 | b>>8
			i++
		}
	}
	return out, nil
}

// ToNRGBA converts the image back to a stdlib *image.NRGBA for encoding.
func (m *RGBImage) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := m.pix[y*m.width+x]
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(c >> 16),
				G: uint8(c >> 8),
				B: uint8(c),
				A: 255,
			})
		}
	}
	return out
}
