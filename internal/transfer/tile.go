package transfer

// defaultTileMegapixels is the image size above which processing is split
// into horizontal bands, bounding peak memory per dispatch and letting a
// GPU path stream results.
const defaultTileMegapixels = 4

// forEachBand splits height rows into horizontal bands of at most maxPixels
// pixels (always at least one full row) and invokes fn(y0, y1) for each in
// order. An image at or under maxPixels is a single band.
func forEachBand(width, height, maxPixels int, fn func(y0, y1 int)) {
	if width <= 0 || height <= 0 {
		return
	}
	if maxPixels <= 0 || width*height <= maxPixels {
		fn(0, height)
		return
	}

	rows := max(maxPixels/width, 1)
	for y := 0; y < height; y += rows {
		fn(y, min(y+rows, height))
	}
}
