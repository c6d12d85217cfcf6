package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/tintshift/tintshift/internal/colour"
	"github.com/tintshift/tintshift/internal/transfer"
)

// clusterFlags is the flag set shared by every command that extracts a
// palette before doing its work.
type clusterFlags struct {
	colours   int
	algorithm string
	space     string
	seed      int64
}

func (f *clusterFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.colours, "colours", "c", 16, "palette size (2-512)")
	fs.StringVarP(&f.algorithm, "algorithm", "a", string(colour.AlgorithmHybrid), "clustering algorithm (hybrid, kmeans, fast)")
	fs.StringVar(&f.space, "space", "lab", "working colour space (lab, rgb)")
	fs.Int64Var(&f.seed, "seed", 0, "random seed (0 uses the fixed default)")
}

// apply folds the flag values into the engine configuration.
func (f *clusterFlags) apply(cfg *transfer.Config) error {
	cfg.Cluster.Algorithm = colour.Algorithm(f.algorithm)
	if f.seed != 0 {
		cfg.Cluster.Seed = f.seed
	}
	sp, ok := colour.ParseSpace(f.space)
	if !ok {
		return fmt.Errorf("unknown colour space: %s (valid: lab, rgb)", f.space)
	}
	cfg.Space = sp
	return nil
}
