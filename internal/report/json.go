package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/cssguide/internal/diag"
)

// JSONVersion is the schema version of the JSON export.
const JSONVersion = "1.0"

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Rules     []RuleCount `json:"rules"`
	Issues    []JSONIssue `json:"issues"`
	Failed    []FileError `json:"failed,omitempty"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues    int `json:"total_issues"`
	Errors         int `json:"errors"`
	Warnings       int `json:"warnings"`
	Infos          int `json:"infos"`
	Truncated      int `json:"truncated"`
	FilesScanned   int `json:"files_scanned"`
	FilesFixed     int `json:"files_fixed"`
	FilesWithIssue int `json:"files_with_issues"`
}

// JSONIssue represents a single violation
type JSONIssue struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Rule      string `json:"rule"`
	Source    string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result, time.Now())
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts a Result to JSONOutput
func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	violations := make([]diag.Violation, len(result.Issues))
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		v := issue.Violation
		violations[i] = v
		jsonIssues[i] = JSONIssue{
			File:      issue.File,
			Line:      v.Pos.Line,
			Column:    v.Pos.Column,
			EndLine:   v.End.Line,
			EndColumn: v.End.Column,
			Severity:  v.Severity.String(),
			Message:   v.Message,
			Rule:      v.Rule,
			Source:    issue.SourceLine,
		}
	}
	errors, warnings, infos := diag.Count(violations)

	return JSONOutput{
		Version:   JSONVersion,
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:    len(result.Issues),
			Errors:         errors,
			Warnings:       warnings,
			Infos:          infos,
			Truncated:      result.TruncatedCount,
			FilesScanned:   result.FilesScanned,
			FilesFixed:     result.FilesFixed,
			FilesWithIssue: filesWithIssues(result.Issues),
		},
		Rules:  countByRule(result.Issues),
		Issues: jsonIssues,
		Failed: result.Failed,
	}
}
