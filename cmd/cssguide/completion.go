package main

import (
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/report"
)

// completionScripts writes the completion script for each supported shell.
var completionScripts = map[string]func(io.Writer) error{
	"bash":       func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
	"zsh":        func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
	"fish":       func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
	"powershell": func(w io.Writer) error { return rootCmd.GenPowerShellCompletionWithDesc(w) },
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Print a shell completion script",
	Long: `Print a completion script for cssguide subcommands, flags and rule ids.
Source it from your shell profile, e.g. "source <(cssguide completion bash)".`,
	ValidArgs: completionShells(),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return completionScripts[args[0]](cmd.OutOrStdout())
	},
}

func completionShells() []string {
	shells := make([]string, 0, len(completionScripts))
	for shell := range completionScripts {
		shells = append(shells, shell)
	}
	slices.Sort(shells)
	return shells
}

// completeCheckIDs completes --enable and --disable with rule ids.
func completeCheckIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return config.CheckIDs(), cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes --output-format.
func completeFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	formats := report.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
