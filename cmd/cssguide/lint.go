package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssguide/internal/batch"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/discover"
	"github.com/yacobolo/cssguide/internal/report"
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Report style guide violations",
	Long: `Check stylesheets against the style guide and report every violation.
Paths may be files, directories or doublestar globs. With --fix, files are
rewritten into canonical form first and only the remaining violations are
reported.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func init() {
	addLintFlags(lintCmd)
}

func addLintFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("fix", false, "Rewrite files into canonical form")
	f.Bool("strict", false, "Exit 1 on any violation (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-rule", 0, "Max issues to show per rule (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-rule-name", true, "Show (rule) suffix on issues")
	f.StringSlice("exclude", nil, "Glob patterns of files to skip")
	f.Int("workers", 0, "Files processed concurrently (0=one per CPU)")
	f.Duration("timeout", 0, "Per-file processing limit (default 10s)")
	cobra.CheckErr(cmd.RegisterFlagCompletionFunc("output-format", completeFormats))
}

func runLint(_ *cobra.Command, args []string) error {
	quiet := getBoolWithFallback("quiet", false)
	logger := setupLogger(getBoolWithFallback("verbose", false), quiet)

	cfg, err := buildStyleConfig()
	if err != nil {
		return err
	}
	settings := buildLintSettings()

	format, err := report.ParseFormat(settings.OutputFormat)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = settings.Paths
	}
	files, stats, err := discover.Files(paths, discover.Options{Exclude: settings.Exclude})
	if err != nil {
		return fmt.Errorf("finding stylesheets: %w", err)
	}
	logger.Debug("discovered files",
		"discovered", stats.FilesDiscovered,
		"scanned", stats.FilesScanned,
		"skipped", stats.FilesSkipped)

	mode := batch.ModeLint
	if cfg.Fix {
		mode = batch.ModeFix
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := batch.Run(ctx, files, cfg, batch.Options{
		Mode:    mode,
		Workers: settings.Workers,
		Timeout: settings.Timeout,
		Logger:  logger,
	})

	result := batch.Report(results)
	for i := range result.Issues {
		result.Issues[i].File = discover.RelativePath(result.Issues[i].File)
	}
	report.SortIssues(result.Issues)

	// Exit code is decided on the full list, before limits hide anything
	failed := shouldFail(result, settings.Strict)

	opts := settings.reportOptions()
	result.Issues, result.TruncatedCount = report.Limit(result.Issues, opts)

	if !quiet {
		if err := report.Write(os.Stdout, result, format, opts); err != nil {
			return err
		}
	}

	if failed {
		return errViolations
	}
	return nil
}

// shouldFail implements the exit code policy: errors and unreadable files
// always fail; warnings fail in strict mode.
func shouldFail(result *report.Result, strict bool) bool {
	if len(result.Failed) > 0 {
		return true
	}
	if strict {
		return len(result.Issues) > 0
	}
	for _, issue := range result.Issues {
		if issue.Violation.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}
