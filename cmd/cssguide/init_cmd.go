package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigFile = ".cssguide.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssguide.yaml config file",
	Long:  `Create a .cssguide.yaml configuration file in the current directory with the default style.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := writeDefaultConfig(defaultConfigFile, force); err != nil {
			return err
		}

		fmt.Println("Created " + defaultConfigFile)
		return nil
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const defaultConfig = `# cssguide configuration
# Precedence: flags > CSSGUIDE_* environment variables > this file > defaults.
# Environment keys use "__" between levels: CSSGUIDE_STYLE__INDENT_WIDTH=2

verbose: false

# Style settings
style:
  indent: tab              # tab | space
  indent-width: 4          # spaces per level when indent is space
  quote: double            # double | single
  blank-lines: 1           # between top-level rulesets
  max-nesting-depth: 1     # preprocessor mode only
  preprocessor: false      # accept nested rulesets, @extend and @include
  naming-allow:
    - html
    - body
  min-class-length: 3
  tie-break: rule          # rule | severity
  fix: false               # lint rewrites files first
  checks:                  # run "cssguide rules" for the list
    naming: false

# Linting settings
lint:
  paths:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.less"
  exclude: []
  strict: false            # exit 1 on warnings too
  output-format: issues    # issues | summary | full | json
  max-issues-per-rule: 0   # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-rule-name: true
  workers: 0               # 0 = one per CPU
  timeout: 10s             # per file
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
