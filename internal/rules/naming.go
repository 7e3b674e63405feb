package rules

import (
	"strings"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/token"
)

// inKeyframes reports whether rs is a keyframe selector block.
func inKeyframes(rs *ast.Ruleset) bool {
	for p := rs.Parent; p != nil; {
		switch n := p.(type) {
		case *ast.AtRule:
			if strings.HasSuffix(n.NameLower(), "keyframes") {
				return true
			}
			p = n.Parent
		case *ast.Ruleset:
			p = n.Parent
		default:
			return false
		}
	}
	return false
}

func checkNaming(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, rs := range sheet.Rulesets() {
		if inKeyframes(rs) {
			continue
		}
		for _, sel := range rs.Selectors {
			out = append(out, namingViolations(sheet.Tokens[sel.Start:sel.End], cfg)...)
		}
	}
	return out
}

// namingViolations scans one selector. Arguments of pseudo-classes and
// attribute selectors are not inspected.
func namingViolations(tokens []token.Token, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	depth := 0
	for i, t := range tokens {
		switch t.Kind {
		case token.LeftParen, token.Function, token.LeftBracket:
			depth++
			continue
		case token.RightParen, token.RightBracket:
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth > 0 {
			continue
		}

		switch {
		case t.Kind == token.Hash:
			if !cfg.NamingAllowed(t.Text) {
				out = append(out, warn(config.CheckNaming, t.Pos,
					"avoid ID selector %q, use a class", t.Text))
			}
		case t.IsDelim('.') && i+1 < len(tokens) && tokens[i+1].Kind == token.Ident:
			name := tokens[i+1].Text
			if len(name) < cfg.MinClassLength && !cfg.NamingAllowed("."+name) {
				out = append(out, warn(config.CheckNaming, t.Pos,
					"class name %q is too short, use a meaningful name", name))
			}
		case t.Kind == token.Ident && startsCompound(tokens, i) && endsCompound(tokens, i):
			if !cfg.NamingAllowed(t.Text) {
				out = append(out, warn(config.CheckNaming, t.Pos,
					"avoid bare type selector %q, use a class", t.Text))
			}
		}
	}
	return out
}

// startsCompound reports whether the ident at i begins a compound selector,
// i.e. it is a type name rather than a class, pseudo-class or suffix.
func startsCompound(tokens []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	switch {
	case prev.Kind == token.Whitespace, prev.Kind == token.Comma, prev.Kind == token.Comment:
		return true
	case prev.IsDelim('>'), prev.IsDelim('+'), prev.IsDelim('~'):
		return true
	}
	return false
}

// endsCompound reports whether nothing qualifies the ident at i.
func endsCompound(tokens []token.Token, i int) bool {
	if i+1 == len(tokens) {
		return true
	}
	next := tokens[i+1]
	switch {
	case next.Kind == token.Whitespace, next.Kind == token.Comma, next.Kind == token.Comment:
		return true
	case next.IsDelim('>'), next.IsDelim('+'), next.IsDelim('~'):
		return true
	}
	return false
}

func checkNestingDepth(sheet *ast.Stylesheet, cfg *config.Config) []diag.Violation {
	var out []diag.Violation
	for _, rs := range sheet.Rulesets() {
		if rs.Depth > cfg.MaxNestingDepth {
			out = append(out, warn(config.CheckNestingDepth, rs.Loc.Start,
				"nesting depth %d exceeds the maximum of %d", rs.Depth, cfg.MaxNestingDepth))
		}
	}
	for _, b := range sheet.Blocks() {
		out = append(out, directiveOrder(b.Items())...)
	}
	return out
}

// directiveOrder checks that @extend and @include open a block, in that
// order. An @include with a content block behaves like a nested rule and is
// exempt.
func directiveOrder(items []ast.Node) []diag.Violation {
	var out []diag.Violation
	seenOther, seenInclude := false, false
	for _, item := range items {
		switch n := item.(type) {
		case *ast.Comment:
		case *ast.AtRule:
			name := n.NameLower()
			switch {
			case name == "include" && n.HasBlock():
				seenOther = true
			case name == "extend" || name == "include":
				if seenOther {
					out = append(out, warn(config.CheckNestingDepth, n.Loc.Start,
						"@%s should be at the top of the block", name))
				} else if name == "extend" && seenInclude {
					out = append(out, warn(config.CheckNestingDepth, n.Loc.Start,
						"@extend should come before @include"))
				}
				if name == "include" {
					seenInclude = true
				}
			default:
				seenOther = true
			}
		default:
			seenOther = true
		}
	}
	return out
}
