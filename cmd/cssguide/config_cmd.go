package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/cssguide/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that results from defaults, the config file,
CSSGUIDE_* environment variables and flags, in config file format.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := buildStyleConfig()
		if err != nil {
			return err
		}
		return writeEffectiveConfig(os.Stdout, cfg, buildLintSettings())
	},
}

// fileConfig is the layout of the config file
type fileConfig struct {
	Verbose bool           `yaml:"verbose"`
	Style   *config.Config `yaml:"style"`
	Lint    lintSettings   `yaml:"lint"`
}

func writeEffectiveConfig(w io.Writer, cfg *config.Config, settings lintSettings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileConfig{
		Verbose: getBoolWithFallback("verbose", false),
		Style:   cfg,
		Lint:    settings,
	}); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
