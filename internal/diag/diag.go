// Package diag defines the violations reported by the parser and the checks.
package diag

import (
	"fmt"
	"sort"

	"github.com/yacobolo/cssguide/internal/token"
)

// Severity indicates how serious a violation is
type Severity int

// Severity levels, most severe first
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rule identifiers that do not belong to a configurable check
const (
	RuleSyntax   = "syntax"   // malformed input found by the parser
	RuleInternal = "internal" // a check misbehaved; low confidence
)

// Violation is a single finding. Pos refers back into the source text the
// stylesheet was parsed from; End is optional.
type Violation struct {
	Rule     string         `json:"rule"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	End      token.Position `json:"end"`
}

// String renders the violation as "line:col: message (rule)".
func (v Violation) String() string {
	return fmt.Sprintf("%d:%d: %s (%s)", v.Pos.Line, v.Pos.Column, v.Message, v.Rule)
}

// New creates a violation at pos.
func New(rule string, severity Severity, pos token.Position, format string, args ...any) Violation {
	return Violation{
		Rule:     rule,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// TieBreak orders violations that start at the same position
type TieBreak string

// Tie-break strategies
const (
	TieBreakRule     TieBreak = "rule"     // rule id, then message
	TieBreakSeverity TieBreak = "severity" // severity, then rule id, then message
)

// Sort orders violations by line, then column, then by the tie-break.
// The sort is stable so identical violations keep their relative order.
func Sort(vs []Violation, tb TieBreak) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		if tb == TieBreakSeverity && a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

// Count returns the number of violations per severity.
func Count(vs []Violation) (errors, warnings, infos int) {
	for _, v := range vs {
		switch v.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return errors, warnings, infos
}

// HasErrors reports whether any violation has error severity.
func HasErrors(vs []Violation) bool {
	errs, _, _ := Count(vs)
	return errs > 0
}

// Filter returns the violations for which keep returns true.
func Filter(vs []Violation, keep func(Violation) bool) []Violation {
	var out []Violation
	for _, v := range vs {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
