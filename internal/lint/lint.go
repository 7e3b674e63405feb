// Package lint runs the enabled rules over a stylesheet and merges their
// violations with the parser's into one ordered list.
package lint

import (
	"fmt"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/parser"
	"github.com/yacobolo/cssguide/internal/rules"
	"github.com/yacobolo/cssguide/internal/token"
)

// Check parses text and returns every violation, sorted. A nil cfg means
// defaults.
func Check(text string, cfg *config.Config) []diag.Violation {
	sheet, syntax := parser.Parse(text)
	return CheckSheet(sheet, syntax, cfg)
}

// CheckSheet runs the enabled rules over an already parsed stylesheet and
// merges in the parser's syntax violations.
func CheckSheet(sheet *ast.Stylesheet, syntax []diag.Violation, cfg *config.Config) []diag.Violation {
	if cfg == nil {
		cfg = config.Default()
	}

	out := make([]diag.Violation, 0, len(syntax))
	out = append(out, syntax...)
	for _, r := range rules.Enabled(cfg) {
		out = append(out, runRule(r, sheet, cfg)...)
	}

	diag.Sort(out, cfg.TieBreak)
	return out
}

// runRule runs one check. A panic or a violation positioned outside the
// document is turned into a low-confidence internal diagnostic.
func runRule(r rules.Rule, sheet *ast.Stylesheet, cfg *config.Config) (out []diag.Violation) {
	defer func() {
		if rec := recover(); rec != nil {
			out = []diag.Violation{internalf("check %s failed: %v", r.ID, rec)}
		}
	}()

	found := r.Check(sheet, cfg)
	out = make([]diag.Violation, 0, len(found))
	for _, v := range found {
		if !inDocument(sheet, v.Pos) {
			out = append(out, internalf("check %s reported %d:%d outside the document", r.ID, v.Pos.Line, v.Pos.Column))
			continue
		}
		out = append(out, v)
	}
	return out
}

func internalf(format string, args ...any) diag.Violation {
	return diag.Violation{
		Rule:     diag.RuleInternal,
		Severity: diag.SeverityInfo,
		Message:  fmt.Sprintf(format, args...),
		Pos:      token.Position{Line: 1, Column: 1},
	}
}

// inDocument reports whether pos addresses a character of the source, or the
// position just past the end of a line.
func inDocument(sheet *ast.Stylesheet, pos token.Position) bool {
	if pos.Line < 1 || pos.Line > len(sheet.Lines) || pos.Column < 1 {
		return false
	}
	if pos.Offset < 0 || pos.Offset > len(sheet.Source) {
		return false
	}
	// CRLF lines are stored without "\r" but columns still count it
	return pos.Column <= len(sheet.Line(pos.Line))+2
}
