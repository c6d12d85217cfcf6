// Package config loads the engine tunables from an optional config file,
// environment variables and defaults, in that order of increasing priority
// for the environment and decreasing for the file (flags are bound by the
// CLI on top).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tintshift/tintshift/internal/colour"
	"github.com/tintshift/tintshift/internal/transfer"
)

// envPrefix namespaces the environment overrides, e.g. TINTSHIFT_LUT_SIZE.
const envPrefix = "TINTSHIFT"

// Config is the on-disk/environment shape of the tunables. Defaults are the
// documented engine defaults.
type Config struct {
	LUTSize         int     `mapstructure:"lut_size"`
	LUTMaxColours   int     `mapstructure:"lut_max_colours"`
	TileMegapixels  int     `mapstructure:"tile_megapixels"`
	SampleCapHybrid int     `mapstructure:"sample_cap_hybrid"`
	SampleCapKMeans int     `mapstructure:"sample_cap_kmeans"`
	MaxIterations   int     `mapstructure:"max_iterations"`
	Convergence     float64 `mapstructure:"convergence"`
	BlockSize       int     `mapstructure:"block_size"`
	MinPts          int     `mapstructure:"min_pts"`
	Seed            int64   `mapstructure:"seed"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LUTSize:         32,
		LUTMaxColours:   256,
		TileMegapixels:  4,
		SampleCapHybrid: 20000,
		SampleCapKMeans: 50000,
		MaxIterations:   50,
		Convergence:     0.05,
		BlockSize:       1024,
		MinPts:          8,
		Seed:            colour.DefaultSeed,
	}
}

// Load reads the configuration. When path is empty the default location
// ($XDG_CONFIG_HOME/tintshift/config.yaml) is tried; a missing file is not
// an error.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("lut_size", def.LUTSize)
	v.SetDefault("lut_max_colours", def.LUTMaxColours)
	v.SetDefault("tile_megapixels", def.TileMegapixels)
	v.SetDefault("sample_cap_hybrid", def.SampleCapHybrid)
	v.SetDefault("sample_cap_kmeans", def.SampleCapKMeans)
	v.SetDefault("max_iterations", def.MaxIterations)
	v.SetDefault("convergence", def.Convergence)
	v.SetDefault("block_size", def.BlockSize)
	v.SetDefault("min_pts", def.MinPts)
	v.SetDefault("seed", def.Seed)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			// Only a malformed file is an error; absence falls back to the
			// defaults and environment.
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Engine converts the loaded values into a transfer engine configuration.
func (c Config) Engine() transfer.Config {
	return transfer.Config{
		LUTSize:         c.LUTSize,
		LUTMaxColours:   c.LUTMaxColours,
		TileMegapixels:  c.TileMegapixels,
		SampleCapHybrid: c.SampleCapHybrid,
		SampleCapKMeans: c.SampleCapKMeans,
		Cluster: colour.ClusterConfig{
			MaxIterations: c.MaxIterations,
			Convergence:   c.Convergence,
			BlockSize:     c.BlockSize,
			MinPts:        c.MinPts,
			Seed:          c.Seed,
		},
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tintshift")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tintshift")
}
