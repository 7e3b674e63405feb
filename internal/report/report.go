// Package report renders lint results for humans and machines.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/cssguide/internal/diag"
)

// Issue is a violation found in a file
type Issue struct {
	File       string         `json:"file"`
	Violation  diag.Violation `json:"violation"`
	SourceLine string         `json:"source_line,omitempty"` // line the violation points at
}

// FileError records a file that could not be processed
type FileError struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// Result aggregates a run over many files
type Result struct {
	Issues         []Issue
	FilesScanned   int
	FilesFixed     int         // files rewritten (fix mode) or that would be (check mode)
	Failed         []FileError // read errors, timeouts
	TruncatedCount int         // issues removed due to limits
}

// Options controls how results are rendered
type Options struct {
	UseColors        bool // force colors; otherwise auto-detected
	PrintLines       bool // show the source line and a caret under each issue
	PrintRuleName    bool // append "(rule)" to each issue
	MaxIssuesPerRule int  // 0 = unlimited
	MaxSameIssues    int  // 0 = unlimited
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{PrintLines: true, PrintRuleName: true}
}

// Reporter handles formatting and outputting linting results
type Reporter struct {
	w             io.Writer
	useColors     bool
	printLines    bool
	printRuleName bool
}

// NewReporter creates a new reporter with the given options
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:             w,
		useColors:     shouldUseColors(opts),
		printLines:    opts.PrintLines,
		printRuleName: opts.PrintRuleName,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(opts Options) bool {
	// Explicit flag wins
	if opts.UseColors {
		return true
	}

	// NO_COLOR opts out everywhere else
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// SortIssues orders issues by file, then line, then column, then rule.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Violation.Pos.Line != b.Violation.Pos.Line {
			return a.Violation.Pos.Line < b.Violation.Pos.Line
		}
		if a.Violation.Pos.Column != b.Violation.Pos.Column {
			return a.Violation.Pos.Column < b.Violation.Pos.Column
		}
		return a.Violation.Rule < b.Violation.Rule
	})
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	v := issue.Violation

	// Format: file:line:col: message (rule)
	location := fmt.Sprintf("%s:%d:%d:", issue.File, v.Pos.Line, v.Pos.Column)

	ruleSuffix := ""
	if r.printRuleName {
		ruleSuffix = fmt.Sprintf(" (%s)", v.Rule)
	}

	message := v.Message
	if v.Severity == diag.SeverityError {
		message = Paint(StyleError, message, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		Paint(StyleHeading, location, r.useColors),
		message,
		Paint(StyleRule, ruleSuffix, r.useColors))

	// Print source line with caret indicator
	if r.printLines && issue.SourceLine != "" {
		fmt.Fprintf(r.w, "\t%s\n", issue.SourceLine)
		caret := r.buildCaretIndicator(issue.SourceLine, v.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", Paint(StyleWarning, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are copied so the caret lines up in any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	// Build padding that matches tabs/spaces in the prefix
	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result Result) {
	totalIssues := len(result.Issues)
	truncated := result.TruncatedCount

	fmt.Fprintln(r.w, "")

	if totalIssues == 0 && truncated == 0 {
		fmt.Fprintln(r.w, Paint(StyleClean, fmt.Sprintf("0 issues in %s.",
			pluralizeCount(result.FilesScanned, "file", "files")), r.useColors))
		return
	}

	issues := make([]diag.Violation, len(result.Issues))
	for i, issue := range result.Issues {
		issues[i] = issue.Violation
	}
	errors, warnings, _ := diag.Count(issues)

	// Show severity breakdown if we have both types
	var parts []string
	if errors > 0 && warnings > 0 {
		parts = append(parts,
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	}
	if truncated > 0 {
		parts = append(parts, pluralizeCount(truncated, "issue", "issues")+" truncated")
	}

	header := pluralizeCount(totalIssues, "issue", "issues")
	if len(parts) > 0 {
		header += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Fprintf(r.w, "%s:\n", header)

	// Group by rule
	for _, rc := range countByRule(result.Issues) {
		fmt.Fprintf(r.w, "* %s: %d\n", rc.Rule, rc.Count)
	}
}

// RuleCount is the number of issues reported by one rule
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// countByRule returns per-rule counts, most frequent first.
func countByRule(issues []Issue) []RuleCount {
	counts := make(map[string]int)
	for _, issue := range issues {
		counts[issue.Violation.Rule]++
	}

	out := make([]RuleCount, 0, len(counts))
	for rule, n := range counts {
		out = append(out, RuleCount{Rule: rule, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Rule < out[j].Rule
	})
	return out
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
