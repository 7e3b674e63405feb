package rules

import (
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/token"
)

// isHexColor reports whether text is a #rgb, #rgba, #rrggbb or #rrggbbaa color.
func isHexColor(text string) bool {
	if len(text) < 2 || text[0] != '#' {
		return false
	}
	switch len(text) - 1 {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 1; i < len(text); i++ {
		c := text[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	_, err := csscolorparser.Parse(text)
	return err == nil
}

// CanonicalHex returns the lowercase shorthand form of a hex color. The
// second result is false when text is not a hex color.
func CanonicalHex(text string) (string, bool) {
	if !isHexColor(text) {
		return "", false
	}
	lower := strings.ToLower(text)
	return shortHex(lower), true
}

// shortHex collapses #aabbcc to #abc and #aabbccdd to #abcd when possible.
func shortHex(hex string) string {
	digits := hex[1:]
	if len(digits) != 6 && len(digits) != 8 {
		return hex
	}
	short := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		if digits[i] != digits[i+1] {
			return hex
		}
		short = append(short, digits[i])
	}
	return "#" + string(short)
}

func checkHexColor(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, d := range allDeclarations(sheet) {
		for _, t := range d.Value {
			if t.Kind != token.Hash || !isHexColor(t.Text) {
				continue
			}
			lower := strings.ToLower(t.Text)
			if lower != t.Text {
				out = append(out, warn(config.CheckHexColor, t.Pos,
					"hex color %q should be lowercase", t.Text))
			}
			if short := shortHex(lower); short != lower {
				out = append(out, warn(config.CheckHexColor, t.Pos,
					"hex color %q should be written as %q", t.Text, short))
			}
		}
	}
	return out
}

func checkQuoteConsistency(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	want := cfg.QuoteChar()

	for _, t := range sheet.Tokens {
		if t.Kind != token.String || len(t.Text) < 2 {
			continue
		}
		inner := t.Text[1 : len(t.Text)-1]
		if t.Text[0] != want && strings.IndexByte(inner, want) < 0 {
			out = append(out, warn(config.CheckQuoteConsistency, t.Pos,
				"string %s should use %s quotes", t.Text, cfg.Quote))
		}
	}

	for _, rs := range sheet.Rulesets() {
		for _, sel := range rs.Selectors {
			out = append(out, unquotedAttributes(sheet.Tokens[sel.Start:sel.End])...)
		}
	}
	return out
}

// unquotedAttributes reports attribute selector values that are not strings.
func unquotedAttributes(tokens []token.Token) []diag.Violation {
	var out []diag.Violation
	inBracket, afterOp := false, false
	for _, t := range tokens {
		switch {
		case t.Kind == token.LeftBracket:
			inBracket, afterOp = true, false
		case t.Kind == token.RightBracket:
			inBracket, afterOp = false, false
		case !inBracket || t.Kind == token.Whitespace:
		case t.Kind == token.Match || t.IsDelim('='):
			afterOp = true
		case afterOp:
			if t.Kind == token.Ident || t.Kind == token.Number {
				out = append(out, warn(config.CheckQuoteConsistency, t.Pos,
					"attribute value %s should be quoted", t.Text))
			}
			afterOp = false
		}
	}
	return out
}

// zeroUnit returns the unit of a zero-valued number token. ok is false when
// the number is not zero or has no unit.
func zeroUnit(text string) (unit string, ok bool) {
	i := 0
	for i < len(text) && strings.IndexByte("+-.0123456789", text[i]) >= 0 {
		i++
	}
	f, err := strconv.ParseFloat(text[:i], 64)
	if err != nil || f != 0 || i == len(text) {
		return "", false
	}
	return text[i:], true
}

func checkZeroUnit(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, d := range allDeclarations(sheet) {
		if !cfg.ZeroUnitAllowed(d.Property) {
			continue
		}
		depth := 0
		for _, t := range d.Value {
			switch t.Kind {
			case token.Function, token.LeftParen:
				depth++
			case token.RightParen:
				if depth > 0 {
					depth--
				}
			case token.Number:
				if depth > 0 {
					continue
				}
				if unit, ok := zeroUnit(t.Text); ok {
					out = append(out, warn(config.CheckZeroUnit, t.Pos,
						"zero value %q does not need the unit %q", t.Text, unit))
				}
			}
		}
	}
	return out
}
