// Package rules contains the style checks and the registry that names them.
//
// Rules are stateless: everything a check needs comes through its
// parameters, and a check never mutates the stylesheet it inspects.
package rules

import (
	"slices"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/token"
)

// CheckFunc inspects a stylesheet and returns its violations.
type CheckFunc func(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation

// Rule is a data-driven rule definition.
type Rule struct {
	ID           string        // configuration key, e.g. "hex-color"
	Description  string        // one line, shown by the rules command
	Severity     diag.Severity // severity of every violation the rule reports
	Fixable      bool          // the formatter removes every violation of this rule
	Preprocessor bool          // only runs in preprocessor mode
	Check        CheckFunc
}

var registry = []Rule{
	{
		ID:          config.CheckIndentation,
		Description: "Indent with the configured character; never mix tabs and spaces",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkIndentation,
	},
	{
		ID:          config.CheckBraceSpacing,
		Description: "One space before '{'; spaces inside one-line rulesets",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkBraceSpacing,
	},
	{
		ID:          config.CheckSelectorPerLine,
		Description: "Each selector of a group on its own line",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkSelectorPerLine,
	},
	{
		ID:          config.CheckDeclarationPerLine,
		Description: "Each declaration on its own line",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkDeclarationPerLine,
	},
	{
		ID:          config.CheckColonSpacing,
		Description: "No space before a declaration colon and exactly one after",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkColonSpacing,
	},
	{
		ID:          config.CheckHexColor,
		Description: "Lowercase hex colors, shorthand where possible",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkHexColor,
	},
	{
		ID:          config.CheckQuoteConsistency,
		Description: "Use the preferred quote; quote attribute selector values",
		Severity:    diag.SeverityWarning,
		Check:       checkQuoteConsistency,
	},
	{
		ID:          config.CheckZeroUnit,
		Description: "Omit units on zero lengths",
		Severity:    diag.SeverityWarning,
		Check:       checkZeroUnit,
	},
	{
		ID:          config.CheckTrailingSemicolon,
		Description: "Terminate the last declaration of a block with ';'",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkTrailingSemicolon,
	},
	{
		ID:          config.CheckClosingBraceAlignment,
		Description: "Align '}' with the first character of the selector line",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkClosingBraceAlignment,
	},
	{
		ID:          config.CheckBlankLines,
		Description: "Separate top-level rulesets with the configured number of blank lines",
		Severity:    diag.SeverityWarning,
		Fixable:     true,
		Check:       checkBlankLines,
	},
	{
		ID:          config.CheckPropertyOrder,
		Description: "Alphabetical declarations; vendor prefixes first; offsets after position",
		Severity:    diag.SeverityWarning,
		Check:       checkPropertyOrder,
	},
	{
		ID:          config.CheckNaming,
		Description: "Prefer meaningful class names over IDs, bare tags and abbreviations",
		Severity:    diag.SeverityWarning,
		Check:       checkNaming,
	},
	{
		ID:           config.CheckNestingDepth,
		Description:  "Limit nesting; @extend then @include at the top of a block",
		Severity:     diag.SeverityWarning,
		Preprocessor: true,
		Check:        checkNestingDepth,
	},
}

// All returns every registered rule in registration order.
func All() []Rule {
	return slices.Clone(registry)
}

// Get returns the rule with the given id.
func Get(id string) (Rule, bool) {
	for _, r := range registry {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Enabled returns the rules that should run under cfg.
func Enabled(cfg *config.Config) []Rule {
	var out []Rule
	for _, r := range registry {
		if !cfg.Enabled(r.ID) {
			continue
		}
		if r.Preprocessor && !cfg.Preprocessor {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Fixable reports whether the formatter fixes every violation of rule id.
func Fixable(id string) bool {
	r, ok := Get(id)
	return ok && r.Fixable
}

// warn builds a warning for rule id at pos. Checks must not consult the
// registry here; it would make its initialization cyclic.
func warn(id string, pos token.Position, format string, args ...any) diag.Violation {
	return diag.New(id, diag.SeverityWarning, pos, format, args...)
}

// tok returns the token at i, or an EOF token when i is out of range.
func tok(sheet *ast.Stylesheet, i int) token.Token {
	if i < 0 || i >= len(sheet.Tokens) {
		return token.Token{Kind: token.EOF}
	}
	return sheet.Tokens[i]
}

// openClose returns the brace indexes of a block.
func openClose(b ast.Block) (openIdx, closeIdx int) {
	switch n := b.(type) {
	case *ast.Ruleset:
		return n.Open, n.Close
	case *ast.AtRule:
		return n.Open, n.Close
	}
	return -1, -1
}

// isOneLine reports whether a closed block opens and closes on one line.
func isOneLine(sheet *ast.Stylesheet, b ast.Block) bool {
	o, c := openClose(b)
	if o < 0 || c < 0 {
		return false
	}
	return sheet.Tokens[o].Pos.Line == sheet.Tokens[c].Pos.Line
}

// leadingWhitespace returns the run of spaces and tabs starting line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}
