package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tintshift/tintshift/internal/export"
	img "github.com/tintshift/tintshift/internal/image"
	"github.com/tintshift/tintshift/internal/transfer"
)

// newExtractCmd builds the extract command.
func newExtractCmd() *cobra.Command {
	var (
		cf      clusterFlags
		format  string
		output  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image by clustering its pixels.

The extract command samples the image, clusters the sampled colours in the
chosen working space and prints the resulting palette.

Examples:
  # Extract 16 colours (default) from an image
  tintshift extract wallpaper.jpg

  # Extract 8 colours with a terminal preview
  tintshift extract --preview -c 8 wallpaper.png

  # Extract colours as a GIMP palette file
  tintshift extract -f gpl -o wallpaper.gpl wallpaper.jpg

  # Reproducible extraction with an explicit seed
  tintshift extract --seed 1234 wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], cf, format, output, preview)
		},
	}

	cf.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatHex, "output format (hex, rgb, json, gpl, csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour previews in the terminal")

	return cmd
}

func runExtract(path string, cf clusterFlags, format, output string, preview bool) error {
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

	log.Debug("loading image", "path", path)
	image, err := img.NewFileLoader().Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	engine := transfer.New(engineCfg, log)
	result, err := engine.Analyze(image, cf.colours)
	if err != nil {
		return fmt.Errorf("palette extraction failed: %w", err)
	}
	if !result.Converged {
		log.Warn("clustering did not converge, palette is best-effort",
			"max_iterations", engineCfg.Cluster.MaxIterations)
	}

	rendered, err := export.Render(result.Palette, format, path)
	if err != nil {
		return err
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Print(rendered)
	}

	if preview {
		printPalettePreview(os.Stdout, result.Palette)
	}
	if flagVerbose {
		printPaletteTable(os.Stderr, result.Palette)
	}

	return nil
}
