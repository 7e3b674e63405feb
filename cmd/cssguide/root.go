package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssguide",
	Short: "Style guide linter and formatter for CSS",
	Long: `Check stylesheets against a fixed style guide and rewrite them into
canonical form. Runs lint when no subcommand is given.`,
	Args: cobra.ArbitraryArgs,
	// Default behavior: run lint when no subcommand is given.
	// We must call loadConfig here because PreRunE of lintCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runLint(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", "", "Config file path (default: .cssguide.yaml, .cssguide.yml, .cssguide.jsonc or .cssguide.json)")

	// Style options
	pf.String("indent", "tab", "Indentation: tab|space")
	pf.Int("indent-width", 4, "Spaces per level when indenting with spaces")
	pf.String("quote", "double", "Preferred quote: double|single")
	pf.Int("blank-lines", 1, "Blank lines between top-level rulesets")
	pf.Int("max-nesting-depth", 1, "Maximum nesting depth in preprocessor mode")
	pf.Bool("preprocessor", false, "Accept nested rulesets and @extend/@include")
	pf.Int("min-class-length", 3, "Class names shorter than this are reported by the naming check")
	pf.String("tie-break", "rule", "Order of violations at the same position: rule|severity")
	pf.StringSlice("enable", nil, "Checks to enable")
	pf.StringSlice("disable", nil, "Checks to disable")
	cobra.CheckErr(rootCmd.RegisterFlagCompletionFunc("enable", completeCheckIDs))
	cobra.CheckErr(rootCmd.RegisterFlagCompletionFunc("disable", completeCheckIDs))

	addLintFlags(rootCmd)

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
