package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	img "github.com/tintshift/tintshift/internal/image"
	"github.com/tintshift/tintshift/internal/transfer"
)

// newPosterizeCmd builds the posterize command.
func newPosterizeCmd() *cobra.Command {
	var (
		cf      clusterFlags
		backend string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "posterize <image>",
		Short: "Quantise an image to its own extracted palette",
		Long: `Posterize an image: extract its palette and rewrite every pixel with
the nearest palette colour.

Examples:
  # Reduce an image to 8 colours
  tintshift posterize -c 8 photo.jpg -o poster.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosterize(args[0], cf, backend, out)
		},
	}

	cf.register(cmd.Flags())
	cmd.Flags().StringVar(&backend, "backend", transfer.BackendAuto, "execution backend (auto, scalar, vector, gpu)")
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "output image path")

	return cmd
}

func runPosterize(path string, cf clusterFlags, backend, out string) error {
	if err := img.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	log := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engineCfg := cfg.Engine()
	if err := cf.apply(&engineCfg); err != nil {
		return err
	}
	engineCfg.Backend = backend

	image, err := img.NewFileLoader().Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	engine := transfer.New(engineCfg, log)
	result, err := engine.Analyze(image, cf.colours)
	if err != nil {
		return fmt.Errorf("palette extraction failed: %w", err)
	}

	posterized, err := engine.Posterize(image, result.Palette)
	if err != nil {
		return fmt.Errorf("posterize failed: %w", err)
	}

	if err := img.Save(posterized, out); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	log.Info("wrote posterized image", "path", out)
	return nil
}
