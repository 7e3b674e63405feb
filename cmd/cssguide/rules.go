package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/report"
	"github.com/yacobolo/cssguide/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the style guide rules",
	Long:  `List every rule with its default state, whether the formatter fixes it, and what it checks.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		printRules(os.Stdout, getBoolWithFallback("color", false))
		return nil
	},
}

func printRules(w io.Writer, useColors bool) {
	width := len("RULE")
	for _, r := range rules.All() {
		width = max(width, len(r.ID))
	}

	header := fmt.Sprintf("%-*s  %-7s  %-7s  %s", width, "RULE", "DEFAULT", "FIXABLE", "DESCRIPTION")
	fmt.Fprintln(w, report.Paint(report.StyleHeading, header, useColors))

	for _, r := range rules.All() {
		state := "off"
		if config.DefaultEnabled(r.ID) {
			state = "on"
		}
		fixable := "no"
		if r.Fixable {
			fixable = "yes"
		}
		description := r.Description
		if r.Preprocessor {
			description += " (preprocessor only)"
		}
		fmt.Fprintf(w, "%-*s  %-7s  %-7s  %s\n", width, r.ID, state, fixable, description)
	}
}
