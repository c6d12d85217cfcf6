// Package cli provides the command-line interface for tintshift.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tintshift/tintshift/internal/config"
	"github.com/tintshift/tintshift/internal/version"
)

var (
	// Global flags.
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tintshift",
		Short: "Extract colour palettes and transfer them between images",
		Long: `Tintshift extracts a representative colour palette from an image by
clustering its pixels in a perceptual colour space, and can transfer that
palette onto another image while preserving its structure.

Supported image formats: JPEG, PNG, GIF, WebP, AVIF`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/tintshift/config.yaml)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newTransferCmd())
	rootCmd.AddCommand(newPosterizeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newLogger builds the logger implied by the global flags.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if flagVerbose {
		level = hclog.Debug
	}
	if flagQuiet {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tintshift",
		Level:  level,
		Output: os.Stderr,
	})
}

// loadConfig reads the configuration honouring the global --config flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
