package report

import (
	"fmt"
	"io"
	"strings"
)

// Format selects how results are written
type Format string

const (
	FormatIssues  Format = "issues"  // golangci-lint style issue list plus summary
	FormatSummary Format = "summary" // statistics only
	FormatFull    Format = "full"    // issues, summary and statistics
	FormatJSON    Format = "json"    // machine-readable document
)

// Formats lists the accepted format names.
func Formats() []Format {
	return []Format{FormatIssues, FormatSummary, FormatFull, FormatJSON}
}

// ParseFormat validates a format name. An empty name selects issues.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatIssues, nil
	}
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want issues, summary, full or json)", name)
}

// Write renders the result in the given format
func Write(w io.Writer, result *Result, format Format, opts Options) error {
	switch format {
	case FormatIssues, "":
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		NewStatsReporter(w, reporter.UseColors()).PrintFailures(*result)

	case FormatSummary:
		stats := NewStatsReporter(w, shouldUseColors(opts))
		stats.PrintStatistics(*result)
		stats.PrintRuleBreakdown(*result)
		stats.PrintFailures(*result)

	case FormatFull:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		stats := NewStatsReporter(w, reporter.UseColors())
		stats.PrintStatistics(*result)
		stats.PrintRuleBreakdown(*result)
		stats.PrintFailures(*result)

	case FormatJSON:
		return WriteJSON(w, result)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
