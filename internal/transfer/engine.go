package transfer

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tintshift/tintshift/internal/colour"
	img "github.com/tintshift/tintshift/internal/image"
)

// MappingStrategy selects how two palettes are put into correspondence
// during resynthesis.
type MappingStrategy string

const (
	// MappingLuminance matches palettes by luminance rank: the darkest
	// source colour replaces the darkest target colour, and so on. The
	// default.
	MappingLuminance MappingStrategy = "luminance"

	// MappingOptimal matches palettes through the Hungarian minimum-cost
	// assignment over the perceptual cost matrix.
	MappingOptimal MappingStrategy = "optimal"
)

// Sampling caps per clustering mode. The density pass is quadratic within
// each block, so the hybrid mode works from a smaller sample than the pure
// centroid modes.
const (
	defaultSampleCapHybrid = 20000
	defaultSampleCapKMeans = 50000
)

// Config holds the engine tunables. Zero-valued fields take the documented
// defaults.
type Config struct {
	// LUTSize is the per-axis resolution of the nearest-colour lookup cube.
	LUTSize int

	// LUTMaxColours is the palette size above which the LUT is skipped in
	// favour of a direct nearest-neighbour scan.
	LUTMaxColours int

	// TileMegapixels bounds the pixels processed per dispatch; larger images
	// are split into horizontal bands.
	TileMegapixels int

	// SampleCapHybrid and SampleCapKMeans cap the reservoir size fed to the
	// respective clustering modes.
	SampleCapHybrid int
	SampleCapKMeans int

	// Space is the working colour space for clustering.
	Space colour.Space

	// Mapping selects the palette correspondence strategy for resynthesis.
	Mapping MappingStrategy

	// Backend is the preferred execution backend name ("auto" probes).
	Backend string

	// Cluster carries the clustering parameters, including algorithm and
	// seed.
	Cluster colour.ClusterConfig
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		LUTSize:         defaultLUTSize,
		LUTMaxColours:   defaultLUTMaxColours,
		TileMegapixels:  defaultTileMegapixels,
		SampleCapHybrid: defaultSampleCapHybrid,
		SampleCapKMeans: defaultSampleCapKMeans,
		Space:           colour.SpaceLab,
		Mapping:         MappingLuminance,
		Backend:         BackendAuto,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LUTSize <= 0 {
		c.LUTSize = def.LUTSize
	}
	if c.LUTMaxColours <= 0 {
		c.LUTMaxColours = def.LUTMaxColours
	}
	if c.TileMegapixels <= 0 {
		c.TileMegapixels = def.TileMegapixels
	}
	if c.SampleCapHybrid <= 0 {
		c.SampleCapHybrid = def.SampleCapHybrid
	}
	if c.SampleCapKMeans <= 0 {
		c.SampleCapKMeans = def.SampleCapKMeans
	}
	if c.Mapping == "" {
		c.Mapping = def.Mapping
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	return c
}

// Engine runs palette analysis and resynthesis. Engines hold no mutable
// state after construction and independent engines may run concurrently.
type Engine struct {
	cfg     Config
	log     hclog.Logger
	backend Backend
}

// New creates an Engine. A nil logger is replaced with a no-op logger.
func New(cfg Config, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	cfg = cfg.withDefaults()
	backend := SelectBackend(cfg.Backend)
	logger.Debug("selected backend", "backend", backend.Name())
	return &Engine{cfg: cfg, log: logger, backend: backend}
}

// Backend returns the execution backend the engine dispatches to.
func (e *Engine) Backend() Backend { return e.backend }

// AnalysisResult is the outcome of Analyze.
type AnalysisResult struct {
	// Palette holds exactly the requested number of colours, in RGB space.
	Palette colour.Palette

	// Converged is false when clustering hit its iteration cap before the
	// movement threshold; the palette is still the best-effort result.
	Converged bool

	// Samples is the number of pixels the palette was clustered from.
	Samples int
}

// Analyze extracts a k-colour palette from the image: reservoir-sample the
// pixels, convert to the working space, cluster, and convert the centroids
// back to RGB.
func (e *Engine) Analyze(m *img.RGBImage, k int) (AnalysisResult, error) {
	if m == nil || len(m.Pix()) == 0 {
		return AnalysisResult{}, fmt.Errorf("empty image: %w", colour.ErrNoPoints)
	}

	sampleCap := e.cfg.SampleCapKMeans
	if e.cfg.Cluster.Algorithm == "" || e.cfg.Cluster.Algorithm == colour.AlgorithmHybrid {
		sampleCap = e.cfg.SampleCapHybrid
	}
	seed := e.cfg.Cluster.Seed
	if seed == 0 {
		seed = colour.DefaultSeed
	}

	start := time.Now()
	pix := m.Pix()
	points := colour.ReservoirStream(len(pix), sampleCap, seed, func(i int) colour.ColorPoint {
		return colour.FromPacked(pix[i])
	})
	e.log.Debug("sampled pixels", "total", len(pix), "sampled", len(points), "elapsed", time.Since(start))

	if e.cfg.Space == colour.SpaceLab {
		points = colour.RGBToLabAll(points)
	}

	start = time.Now()
	res, err := colour.Cluster(points, k, e.cfg.Cluster)
	if err != nil {
		return AnalysisResult{}, err
	}
	e.log.Debug("clustered", "k", k, "converged", res.Converged, "elapsed", time.Since(start))

	centroids := res.Centroids
	if e.cfg.Space == colour.SpaceLab {
		centroids = colour.LabToRGBAll(centroids)
	}

	return AnalysisResult{
		Palette:   colour.NewPalette(centroids, colour.SpaceRGB),
		Converged: res.Converged,
		Samples:   len(points),
	}, nil
}

// Resynthesize rewrites target so that every output pixel is drawn from
// source, preserving the target's structure. Under the default luminance
// strategy both palettes are sorted by luminance and each pixel's nearest
// target-palette colour is replaced by the same-rank source colour (rank
// modulo the source size when the palettes differ in length). The optimal
// strategy replaces the rank pairing with the Hungarian assignment.
func (e *Engine) Resynthesize(target *img.RGBImage, source, targetPal colour.Palette) (*img.RGBImage, error) {
	if target == nil || len(target.Pix()) == 0 {
		return nil, fmt.Errorf("empty target image: %w", colour.ErrNoPoints)
	}
	if source.Len() == 0 || targetPal.Len() == 0 {
		return nil, fmt.Errorf("empty palette: %w", colour.ErrNoPoints)
	}

	srcRGB := source.ToSpace(colour.SpaceRGB)
	tgtRGB := targetPal.ToSpace(colour.SpaceRGB)

	var search colour.Palette
	out := make([]uint32, tgtRGB.Len())

	switch e.cfg.Mapping {
	case MappingOptimal:
		mapping := colour.ComputeMapping(tgtRGB, srcRGB)
		search = tgtRGB
		for i := range out {
			out[i] = srcRGB.At(mapping[i]).Packed()
		}
	default:
		srcSorted := srcRGB.SortByLuminance()
		tgtSorted := tgtRGB.SortByLuminance()
		search = tgtSorted
		for i := range out {
			out[i] = srcSorted.At(i % srcSorted.Len()).Packed()
		}
	}

	return e.apply(target, search, out), nil
}

// Posterize quantises the image to the given palette: each pixel becomes
// its nearest palette colour. It is Resynthesize with an identity mapping.
func (e *Engine) Posterize(m *img.RGBImage, pal colour.Palette) (*img.RGBImage, error) {
	if m == nil || len(m.Pix()) == 0 {
		return nil, fmt.Errorf("empty image: %w", colour.ErrNoPoints)
	}
	if pal.Len() == 0 {
		return nil, fmt.Errorf("empty palette: %w", colour.ErrNoPoints)
	}

	rgb := pal.ToSpace(colour.SpaceRGB)
	out := make([]uint32, rgb.Len())
	for i := range out {
		out[i] = rgb.At(i).Packed()
	}

	return e.apply(m, rgb, out), nil
}

// apply maps every pixel of m through the search palette and output table,
// tiled into horizontal bands and dispatched to the selected backend.
func (e *Engine) apply(m *img.RGBImage, search colour.Palette, out []uint32) *img.RGBImage {
	var mapper Mapper
	if search.Len() <= e.cfg.LUTMaxColours {
		start := time.Now()
		mapper = newLUTMapper(search, out, e.cfg.LUTSize)
		e.log.Debug("built LUT", "size", e.cfg.LUTSize, "colours", search.Len(), "elapsed", time.Since(start))
	} else {
		mapper = newDirectMapper(search, out)
		e.log.Debug("palette above LUT cutoff, using direct search", "colours", search.Len())
	}

	result := m.Clone()
	maxPixels := e.cfg.TileMegapixels * 1_000_000
	start := time.Now()
	forEachBand(m.Width(), m.Height(), maxPixels, func(y0, y1 int) {
		e.backend.MapPixels(result.Rows(y0, y1), m.Rows(y0, y1), mapper)
	})
	e.log.Debug("mapped pixels", "backend", e.backend.Name(), "pixels", len(m.Pix()), "elapsed", time.Since(start))

	return result
}
