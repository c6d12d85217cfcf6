// Package colour implements the colour maths and clustering engine used for
// palette extraction and transfer: RGB/CIELAB conversion, the CIEDE2000
// difference metric, reservoir sampling and hybrid density/k-means clustering.
package colour

import (
	"math"
	"runtime"
	"sync"
)

// Space identifies the colour space a ColorPoint's channels are expressed in.
type Space int

const (
	// SpaceRGB holds R, G, B channels, each in [0, 255].
	SpaceRGB Space = iota

	// SpaceLab holds CIELAB L, a, b channels (L in [0, 100], a/b roughly
	// [-128, 127]) relative to the D65 reference white.
	SpaceLab
)

// String returns the lowercase name of the space.
func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceLab:
		return "lab"
	default:
		return "unknown"
	}
}

// ParseSpace parses a space name ("rgb" or "lab").
func ParseSpace(name string) (Space, bool) {
	switch name {
	case "rgb":
		return SpaceRGB, true
	case "lab":
		return SpaceLab, true
	default:
		return SpaceRGB, false
	}
}

// ColorPoint is a single colour as three floating point channels. The channel
// semantics are given by the Space the point was produced in.
type ColorPoint [3]float64

// D65 reference white used for the XYZ/Lab transform.
const (
	refWhiteX = 95.047
	refWhiteY = 100.0
	refWhiteZ = 108.883
)

// CIE f(t) constants.
const (
	cieEpsilon = 0.008856
	cieKappa   = 903.3
)

// FromPacked unpacks a 0xRRGGBB colour into an RGB ColorPoint.
func FromPacked(c uint32) ColorPoint {
	return ColorPoint{
		float64((c >> 16) & 0xff),
		float64((c >> 8) & 0xff),
		float64(c & 0xff),
	}
}

// Packed returns the point as a packed 0xRRGGBB colour. The point must be in
// RGB space; channels are rounded and clamped to [0, 255].
func (p ColorPoint) Packed() uint32 {
	r := uint32(clampChannel(math.Round(p[0])))
	g := uint32(clampChannel(math.Round(p[1])))
	b := uint32(clampChannel(math.Round(p[2])))
	return r<<16 | g<<8 | b
}

// SquaredDistance returns the squared Euclidean distance to other. This is
// the metric used for cluster assignment and nearest-palette lookup.
func (p ColorPoint) SquaredDistance(other ColorPoint) float64 {
	d0 := p[0] - other[0]
	d1 := p[1] - other[1]
	d2 := p[2] - other[2]
	return d0*d0 + d1*d1 + d2*d2
}

// RGBToLab converts an sRGB point (channels in [0, 255]) to CIELAB under D65.
func RGBToLab(p ColorPoint) ColorPoint {
	// Linearise sRGB.
	r := srgbToLinear(p[0] / 255.0)
	g := srgbToLinear(p[1] / 255.0)
	b := srgbToLinear(p[2] / 255.0)

	// Linear RGB to XYZ, scaled to the 0-100 white point convention.
	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100.0
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100.0
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100.0

	fx := labF(x / refWhiteX)
	fy := labF(y / refWhiteY)
	fz := labF(z / refWhiteZ)

	return ColorPoint{
		116.0*fy - 16.0,
		500.0 * (fx - fy),
		200.0 * (fy - fz),
	}
}

// LabToRGB converts a CIELAB point back to sRGB, clamping each channel to
// [0, 255]. LabToRGB(RGBToLab(p)) reproduces p within rounding error.
func LabToRGB(p ColorPoint) ColorPoint {
	fy := (p[0] + 16.0) / 116.0
	fx := fy + p[1]/500.0
	fz := fy - p[2]/200.0

	x := labFInv(fx) * refWhiteX
	y := labFInv(fy) * refWhiteY
	z := labFInv(fz) * refWhiteZ

	x /= 100.0
	y /= 100.0
	z /= 100.0

	// Inverse of the sRGB matrix.
	r := x*3.2404542 + y*-1.5371385 + z*-0.4985314
	g := x*-0.9692660 + y*1.8760108 + z*0.0415560
	b := x*0.0556434 + y*-0.2040259 + z*1.0572252

	return ColorPoint{
		clampChannel(linearToSRGB(r) * 255.0),
		clampChannel(linearToSRGB(g) * 255.0),
		clampChannel(linearToSRGB(b) * 255.0),
	}
}

// Convert converts a point between spaces. Converting to the same space is a
// no-op.
func Convert(p ColorPoint, from, to Space) ColorPoint {
	if from == to {
		return p
	}
	if from == SpaceRGB && to == SpaceLab {
		return RGBToLab(p)
	}
	return LabToRGB(p)
}

// batchParallelThreshold is the slice length above which batch conversions
// are sharded across worker goroutines. Each element is independent, so
// sharding cannot change the result.
const batchParallelThreshold = 1 << 14

// RGBToLabAll converts a slice of RGB points to CIELAB.
func RGBToLabAll(points []ColorPoint) []ColorPoint {
	return convertAll(points, RGBToLab)
}

// LabToRGBAll converts a slice of CIELAB points to sRGB.
func LabToRGBAll(points []ColorPoint) []ColorPoint {
	return convertAll(points, LabToRGB)
}

func convertAll(points []ColorPoint, fn func(ColorPoint) ColorPoint) []ColorPoint {
	out := make([]ColorPoint, len(points))
	if len(points) < batchParallelThreshold {
		for i, p := range points {
			out[i] = fn(p)
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(points) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(points); start += chunk {
		end := min(start+chunk, len(points))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = fn(points[i])
			}
		}(start, end)
	}
	wg.Wait()

	return out
}

// srgbToLinear removes the sRGB gamma encoding from a channel in [0, 1].
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB applies the sRGB gamma encoding to a linear channel.
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

func labF(t float64) float64 {
	if t > cieEpsilon {
		return math.Cbrt(t)
	}
	return (cieKappa*t + 16.0) / 116.0
}

// labFInv inverts labF. The breakpoint is delta = 6/29, the cube root of
// cieEpsilon.
func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return (116.0*t - 16.0) / cieKappa
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
