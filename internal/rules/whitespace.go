package rules

import (
	"strings"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/token"
)

// commentLines returns the lines that begin inside a multi-line comment.
func commentLines(sheet *ast.Stylesheet) map[int]bool {
	inside := map[int]bool{}
	for _, t := range sheet.Tokens {
		if t.Kind != token.Comment && t.Kind != token.String {
			continue
		}
		end := t.End().Line
		for l := t.Pos.Line + 1; l <= end; l++ {
			inside[l] = true
		}
	}
	return inside
}

func checkIndentation(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	skip := commentLines(sheet)
	src := sheet.Source

	off := 0
	for n := 1; ; n++ {
		end := strings.IndexByte(src[off:], '\n')
		raw := src[off:]
		if end >= 0 {
			raw = src[off : off+end]
		}
		line := strings.TrimSuffix(raw, "\r")

		if indent := leadingWhitespace(line); !skip[n] && indent != "" && strings.TrimSpace(line) != "" {
			pos := token.Position{Line: n, Column: 1, Offset: off}
			if v, bad := indentViolation(indent, cfg, pos); bad {
				out = append(out, v)
			}
		}

		if end < 0 {
			return out
		}
		off += end + 1
	}
}

func indentViolation(indent string, cfg *config.Config, pos token.Position) (diag.Violation, bool) {
	tabs := strings.Contains(indent, "\t")
	spaces := strings.Contains(indent, " ")
	switch {
	case tabs && spaces:
		return warn(config.CheckIndentation, pos, "indentation mixes tabs and spaces"), true
	case cfg.Indent == config.IndentTab && spaces:
		return warn(config.CheckIndentation, pos, "indentation uses spaces, expected tabs"), true
	case cfg.Indent == config.IndentSpace && tabs:
		return warn(config.CheckIndentation, pos, "indentation uses tabs, expected spaces"), true
	case cfg.Indent == config.IndentSpace && len(indent)%cfg.IndentWidth != 0:
		return warn(config.CheckIndentation, pos,
			"indentation of %d spaces is not a multiple of %d", len(indent), cfg.IndentWidth), true
	}
	return diag.Violation{}, false
}

func checkBraceSpacing(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, b := range sheet.Blocks() {
		o, c := openClose(b)
		if o <= 0 {
			continue
		}
		open := sheet.Tokens[o]
		prev := sheet.Tokens[o-1]
		switch {
		case prev.Kind != token.Whitespace:
			out = append(out, warn(config.CheckBraceSpacing, open.Pos, "missing space before '{'"))
		case prev.Text != " ":
			out = append(out, warn(config.CheckBraceSpacing, prev.Pos, "expected a single space before '{'"))
		}

		rs, ok := b.(*ast.Ruleset)
		if !ok || c < 0 || !isOneLine(sheet, b) || len(rs.Declarations) != 1 || len(rs.Body) != 1 {
			continue
		}
		if after := tok(sheet, o+1); after.Kind != token.Whitespace {
			out = append(out, warn(config.CheckBraceSpacing, after.Pos, "missing space after '{'"))
		}
		if before := tok(sheet, c-1); before.Kind != token.Whitespace {
			out = append(out, warn(config.CheckBraceSpacing, sheet.Tokens[c].Pos, "missing space before '}'"))
		}
	}
	return out
}

func checkSelectorPerLine(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, rs := range sheet.Rulesets() {
		for i := 1; i < len(rs.Selectors); i++ {
			prevEnd := sheet.Tokens[rs.Selectors[i-1].End-1].End()
			sel := rs.Selectors[i]
			if sel.Pos.Line == prevEnd.Line {
				out = append(out, warn(config.CheckSelectorPerLine, sel.Pos,
					"selector %q should be on its own line", sel.Text))
			}
		}
	}
	return out
}

func checkDeclarationPerLine(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, b := range sheet.Blocks() {
		decls := b.Decls()
		if len(decls) == 0 {
			continue
		}
		o, _ := openClose(b)
		first := decls[0]
		if len(b.Items()) > 1 && first.Loc.Start.Line == sheet.Tokens[o].Pos.Line {
			out = append(out, warn(config.CheckDeclarationPerLine, first.Loc.Start,
				"declaration %q should start on a new line", first.Property))
		}
		for i := 1; i < len(decls); i++ {
			if decls[i].Loc.Start.Line == decls[i-1].Loc.End.Line {
				out = append(out, warn(config.CheckDeclarationPerLine, decls[i].Loc.Start,
					"declaration %q should be on its own line", decls[i].Property))
			}
		}
	}
	return out
}

// allDeclarations returns every declaration in source order.
func allDeclarations(sheet *ast.Stylesheet) []*ast.Declaration {
	var out []*ast.Declaration
	ast.Walk(sheet.Nodes, func(n ast.Node) bool {
		if d, ok := n.(*ast.Declaration); ok {
			out = append(out, d)
		}
		return true
	})
	return out
}

func checkColonSpacing(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, d := range allDeclarations(sheet) {
		if len(d.Value) == 0 {
			continue
		}
		if before := tok(sheet, d.Colon-1); d.Colon > d.Name && before.Kind == token.Whitespace {
			out = append(out, warn(config.CheckColonSpacing, before.Pos,
				"unexpected space before ':' in %q", d.Property))
		}
		after := tok(sheet, d.Colon+1)
		switch {
		case after.Kind != token.Whitespace:
			out = append(out, warn(config.CheckColonSpacing, after.Pos,
				"missing space after ':' in %q", d.Property))
		case after.Text != " ":
			out = append(out, warn(config.CheckColonSpacing, after.Pos,
				"expected a single space after ':' in %q", d.Property))
		}
	}
	return out
}

func checkTrailingSemicolon(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, d := range allDeclarations(sheet) {
		if d.HasSemicolon() || len(d.Value) == 0 {
			continue
		}
		out = append(out, warn(config.CheckTrailingSemicolon, d.Loc.End,
			"missing semicolon after %q declaration", d.Property))
	}
	return out
}

// anchorLine returns the line a block's closing brace aligns with.
func anchorLine(sheet *ast.Stylesheet, b ast.Block) int {
	switch n := b.(type) {
	case *ast.Ruleset:
		if len(n.Selectors) > 0 {
			return n.Selectors[0].Pos.Line
		}
		return sheet.Tokens[n.Open].Pos.Line
	case *ast.AtRule:
		return sheet.Tokens[n.Keyword].Pos.Line
	}
	return 0
}

func checkClosingBraceAlignment(sheet *ast.Stylesheet, _ *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, b := range sheet.Blocks() {
		_, c := openClose(b)
		if c < 0 || isOneLine(sheet, b) {
			continue
		}
		want := len(leadingWhitespace(sheet.Line(anchorLine(sheet, b)))) + 1
		closing := sheet.Tokens[c]
		if closing.Pos.Column != want {
			out = append(out, warn(config.CheckClosingBraceAlignment, closing.Pos,
				"closing brace should be at column %d to align with the selector line", want))
		}
	}
	return out
}

// checkBlankLines measures the gap between adjacent top-level rulesets. A
// comment trailing the first ruleset belongs to it, so the gap starts where
// that comment ends.
func checkBlankLines(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var (
		out     []diag.Violation
		prev    *ast.Ruleset
		prevEnd token.Position
	)
	for _, n := range sheet.Nodes {
		if c, ok := n.(*ast.Comment); ok && c.Trailing && prev != nil {
			prevEnd = c.Loc.End
			continue
		}
		next, ok := n.(*ast.Ruleset)
		if ok && prev != nil && prev.Closed() {
			blank := max(next.Loc.Start.Line-prevEnd.Line-1, 0)
			if blank != cfg.BlankLines {
				out = append(out, warn(config.CheckBlankLines, next.Loc.Start,
					"expected %d blank %s between rulesets, found %d", cfg.BlankLines, plural(cfg.BlankLines, "line"), blank))
			}
		}
		prev, prevEnd = next, n.Span().End
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
