package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/yacobolo/cssguide/internal/diag"
)

// StatsReporter prints aggregate statistics instead of individual issues
type StatsReporter struct {
	w         io.Writer
	useColors bool
}

// NewStatsReporter creates a statistics reporter
func NewStatsReporter(w io.Writer, useColors bool) *StatsReporter {
	return &StatsReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs per-severity and per-rule totals
func (r *StatsReporter) PrintStatistics(result Result) {
	violations := make([]diag.Violation, len(result.Issues))
	for i, issue := range result.Issues {
		violations[i] = issue.Violation
	}
	errors, warnings, infos := diag.Count(violations)

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, Paint(StyleHeading, "Style Guide Statistics", r.useColors))
	fmt.Fprintln(r.w, "----------------------")

	fmt.Fprintf(r.w, "Files Scanned:   %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files With Issues: %d\n", filesWithIssues(result.Issues))
	if result.FilesFixed > 0 {
		fmt.Fprintf(r.w, "Files Fixed:     %d\n", result.FilesFixed)
	}
	fmt.Fprintf(r.w, "Errors:          %s\n", Paint(StyleError, fmt.Sprint(errors), r.useColors && errors > 0))
	fmt.Fprintf(r.w, "Warnings:        %s\n", Paint(StyleWarning, fmt.Sprint(warnings), r.useColors && warnings > 0))
	fmt.Fprintf(r.w, "Info:            %d\n", infos)
}

// PrintRuleBreakdown lists how often each rule fired
func (r *StatsReporter) PrintRuleBreakdown(result Result) {
	counts := countByRule(result.Issues)
	if len(counts) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, Paint(StyleHeading, "By Rule", r.useColors))
	fmt.Fprintln(r.w, "-------")

	width := 0
	for _, rc := range counts {
		width = max(width, len(rc.Rule))
	}
	for _, rc := range counts {
		fmt.Fprintf(r.w, "%-*s  %d\n", width, rc.Rule, rc.Count)
	}
}

// PrintFailures shows files that could not be processed
func (r *StatsReporter) PrintFailures(result Result) {
	if len(result.Failed) == 0 {
		return
	}

	failed := append([]FileError(nil), result.Failed...)
	sort.Slice(failed, func(i, j int) bool { return failed[i].File < failed[j].File })

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, Paint(StyleError, "Failed Files", r.useColors))
	fmt.Fprintln(r.w, "------------")

	for _, f := range failed {
		fmt.Fprintf(r.w, "• %s: %s\n", f.File, f.Err)
	}
}

func filesWithIssues(issues []Issue) int {
	files := make(map[string]struct{})
	for _, issue := range issues {
		files[issue.File] = struct{}{}
	}
	return len(files)
}
