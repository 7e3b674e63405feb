package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssguide/internal/batch"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/discover"
	"github.com/yacobolo/cssguide/internal/format"
	"github.com/yacobolo/cssguide/internal/report"
)

// stdinName stands for standard input in arguments and output.
const stdinName = "-"

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Rewrite stylesheets into canonical form",
	Long: `Rewrite stylesheets into canonical form in place. Files with syntax
errors are left untouched and their errors reported.
With "-" the stylesheet is read from stdin and written to stdout.
With --check nothing is written; files that would change are listed and
the exit code is 1.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runFmt,
}

func init() {
	f := fmtCmd.Flags()
	f.Bool("check", false, "List files whose formatting differs and exit 1")
	f.StringSlice("exclude", nil, "Glob patterns of files to skip")
	f.Int("workers", 0, "Files processed concurrently (0=one per CPU)")
	f.Duration("timeout", 0, "Per-file processing limit (default 10s)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	quiet := getBoolWithFallback("quiet", false)
	logger := setupLogger(getBoolWithFallback("verbose", false), quiet)

	cfg, err := buildStyleConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == stdinName {
		return formatStdin(os.Stdin, os.Stdout, os.Stderr, cfg, check)
	}

	settings := buildLintSettings()
	paths := args
	if len(paths) == 0 {
		paths = settings.Paths
	}
	files, _, err := discover.Files(paths, discover.Options{Exclude: settings.Exclude})
	if err != nil {
		return fmt.Errorf("finding stylesheets: %w", err)
	}

	mode := batch.ModeFix
	if check {
		mode = batch.ModeCheck
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := batch.Run(ctx, files, cfg, batch.Options{
		Mode:    mode,
		Workers: settings.Workers,
		Timeout: settings.Timeout,
		Logger:  logger,
	})

	failed := reportFmtProblems(os.Stderr, results)

	changed := batch.Changed(results)
	if !quiet {
		for _, path := range changed {
			fmt.Fprintln(os.Stdout, discover.RelativePath(path))
		}
	}

	if failed || (check && len(changed) > 0) {
		return errViolations
	}
	return nil
}

// reportFmtProblems prints unreadable files and syntax errors, which keep a
// file from being formatted. It reports whether there were any.
func reportFmtProblems(w io.Writer, results []batch.FileResult) bool {
	reporter := report.NewReporter(w, report.Options{
		UseColors:     getBoolWithFallback("color", false),
		PrintLines:    true,
		PrintRuleName: true,
	})

	failed := false
	for _, r := range results {
		path := discover.RelativePath(r.Path)
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", path, r.Err)
			failed = true
			continue
		}

		syntax := syntaxIssues(path, r.Text, r.Violations)
		if len(syntax) > 0 {
			reporter.PrintIssues(syntax)
			failed = true
		}
	}
	return failed
}

// formatStdin formats one stylesheet from in to out. Syntax errors are
// printed to errOut and nothing is written.
func formatStdin(in io.Reader, out, errOut io.Writer, cfg *config.Config, check bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	text := string(data)

	formatted, vs := format.Format(text, cfg)
	if syntax := syntaxIssues("<stdin>", text, vs); len(syntax) > 0 {
		report.NewReporter(errOut, report.Options{PrintLines: true, PrintRuleName: true}).PrintIssues(syntax)
		return errViolations
	}

	if check {
		if formatted != text {
			fmt.Fprintln(out, "<stdin>")
			return errViolations
		}
		return nil
	}

	_, err = io.WriteString(out, formatted)
	return err
}

func syntaxIssues(file, text string, vs []diag.Violation) []report.Issue {
	syntax := diag.Filter(vs, func(v diag.Violation) bool { return v.Rule == diag.RuleSyntax })
	if len(syntax) == 0 {
		return nil
	}

	lines := strings.Split(text, "\n")
	issues := make([]report.Issue, len(syntax))
	for i, v := range syntax {
		issues[i] = report.Issue{File: file, Violation: v}
		if v.Pos.Line >= 1 && v.Pos.Line <= len(lines) {
			issues[i].SourceLine = strings.TrimRight(lines[v.Pos.Line-1], "\r")
		}
	}
	return issues
}
