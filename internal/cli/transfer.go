package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	img "github.com/tintshift/tintshift/internal/image"
	"github.com/tintshift/tintshift/internal/transfer"
)

// newTransferCmd builds the transfer command.
func newTransferCmd() *cobra.Command {
	var (
		cf      clusterFlags
		mapping string
		backend string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "transfer <source> <target>",
		Short: "Transfer the source image's palette onto the target image",
		Long: `Transfer the colour palette of one image onto another.

Both images are analysed for a palette of the same size; every pixel of the
target is then rewritten with a colour from the source palette, chosen
through the selected palette correspondence.

Examples:
  # Recolour photo.jpg with the palette of sunset.jpg
  tintshift transfer sunset.jpg photo.jpg -o recoloured.png

  # Use the Hungarian optimal correspondence instead of luminance rank
  tintshift transfer --mapping optimal sunset.jpg photo.jpg -o out.png

  # Force the scalar reference backend
  tintshift transfer --backend scalar sunset.jpg photo.jpg -o out.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(args[0], args[1], cf, mapping, backend, out)
		},
	}

	cf.register(cmd.Flags())
	cmd.Flags().StringVar(&mapping, "mapping", string(transfer.MappingLuminance), "palette correspondence (luminance, optimal)")
	cmd.Flags().StringVar(&backend, "backend", transfer.BackendAuto, "execution backend (auto, scalar, vector, gpu)")
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "output image path")

	return cmd
}

func runTransfer(sourcePath, targetPath string, cf clusterFlags, mapping, backend, out string) error {
	for _, p := range []string{sourcePath, targetPath} {
		if err := img.ValidateImagePath(p); err != nil {
			return fmt.Errorf("invalid image path: %w", err)
		}
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
	engineCfg.Mapping = transfer.MappingStrategy(mapping)
	engineCfg.Backend = backend

	loader := img.NewFileLoader()
	source, err := loader.Load(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to load source image: %w", err)
	}
	target, err := loader.Load(targetPath)
	if err != nil {
		return fmt.Errorf("failed to load target image: %w", err)
	}

	engine := transfer.New(engineCfg, log)

	sourceRes, err := engine.Analyze(source, cf.colours)
	if err != nil {
		return fmt.Errorf("source palette extraction failed: %w", err)
	}
	targetRes, err := engine.Analyze(target, cf.colours)
	if err != nil {
		return fmt.Errorf("target palette extraction failed: %w", err)
	}

	result, err := engine.Resynthesize(target, sourceRes.Palette, targetRes.Palette)
	if err != nil {
		return fmt.Errorf("resynthesis failed: %w", err)
	}

	if err := img.Save(result, out); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	log.Info("wrote transferred image", "path", out)
	return nil
}
