package colour

import "errors"

// Invalid-argument errors. These are reported synchronously and never carry a
// partial result. Backend or resource problems are not represented here: they
// are absorbed by the backend dispatch with a fallback, and non-convergence
// is reported via ClusterResult.Converged rather than an error.
var (
	// ErrInvalidColourCount signals a requested palette size outside [2, 512].
	ErrInvalidColourCount = errors.New("colour count out of range (2-512)")

	// ErrTooFewPoints signals a requested palette size larger than the number
	// of input points.
	ErrTooFewPoints = errors.New("more colours requested than input points")

	// ErrNoPoints signals an empty input point set or image.
	ErrNoPoints = errors.New("no input points")
)

// Palette size limits for clustering output.
const (
	MinColours = 2
	MaxColours = 512
)
