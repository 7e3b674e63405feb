// Package format rewrites a stylesheet into its canonical form.
//
// The printer walks the tree with a type switch and emits every node from
// scratch, so whitespace fixes (indentation, brace and colon spacing,
// selector and declaration layout, blank lines, closing-brace alignment,
// semicolons) fall out of the layout itself. Values are only touched where
// the rewrite cannot change meaning: whitespace runs and hex colors.
package format

import (
	"strings"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/lint"
	"github.com/yacobolo/cssguide/internal/parser"
	"github.com/yacobolo/cssguide/internal/rules"
	"github.com/yacobolo/cssguide/internal/token"
)

// Format returns the canonical text and the violations left in it. Text
// with syntax violations is returned unchanged together with its full
// violation list. A nil cfg means defaults.
func Format(text string, cfg *config.Config) (string, []diag.Violation) {
	if cfg == nil {
		cfg = config.Default()
	}

	sheet, syntax := parser.Parse(text)
	if len(syntax) > 0 {
		return text, lint.CheckSheet(sheet, syntax, cfg)
	}

	out := Print(sheet, cfg)
	return out, lint.Check(out, cfg)
}

// Print renders a syntactically valid stylesheet. The stylesheet is not
// modified.
func Print(sheet *ast.Stylesheet, cfg *config.Config) string {
	p := &printer{sheet: sheet, cfg: cfg, unit: cfg.IndentUnit()}
	p.topLevel(sheet.Nodes)
	if p.buf.Len() == 0 {
		return ""
	}
	p.buf.WriteByte('\n')
	return p.buf.String()
}

type printer struct {
	sheet *ast.Stylesheet
	cfg   *config.Config
	unit  string
	buf   strings.Builder
}

func (p *printer) indent(level int) {
	for i := 0; i < level; i++ {
		p.buf.WriteString(p.unit)
	}
}

func (p *printer) newline(level int) {
	p.buf.WriteByte('\n')
	p.indent(level)
}

// keepsAdjacent reports whether n is a comment or statement at-rule, which
// stay attached to a directly following node.
func keepsAdjacent(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Comment:
		return true
	case *ast.AtRule:
		return !n.HasBlock()
	}
	return false
}

func isTrailing(n ast.Node) bool {
	c, ok := n.(*ast.Comment)
	return ok && c.Trailing
}

func (p *printer) topLevel(nodes []ast.Node) {
	var owner ast.Node // last node that is not a trailing comment
	for i, n := range nodes {
		if i > 0 {
			switch {
			case isTrailing(n):
				p.buf.WriteByte(' ')
				p.buf.WriteString(n.(*ast.Comment).Text)
				continue
			case keepsAdjacent(owner) && n.Span().Start.Line-nodes[i-1].Span().End.Line <= 1:
				p.buf.WriteByte('\n')
			default:
				p.buf.WriteString(strings.Repeat("\n", p.cfg.BlankLines+1))
			}
		}
		p.node(n, 0)
		owner = n
	}
}

func (p *printer) node(n ast.Node, level int) {
	switch n := n.(type) {
	case *ast.Comment:
		p.buf.WriteString(n.Text)
	case *ast.Declaration:
		p.declaration(n)
	case *ast.Ruleset:
		p.ruleset(n, level)
	case *ast.AtRule:
		p.atRule(n, level)
	}
}

func (p *printer) ruleset(rs *ast.Ruleset, level int) {
	for i, sel := range rs.Selectors {
		if i > 0 {
			p.buf.WriteByte(',')
			p.newline(level)
		}
		p.buf.WriteString(ast.CollapseText(p.sheet.Tokens[sel.Start:sel.End]))
	}
	if len(rs.Selectors) > 0 {
		p.buf.WriteByte(' ')
	}
	p.block(rs, level)
}

func (p *printer) atRule(at *ast.AtRule, level int) {
	p.buf.WriteByte('@')
	p.buf.WriteString(at.Name)
	if len(at.Prelude) > 0 {
		p.buf.WriteByte(' ')
		p.buf.WriteString(ast.CollapseText(at.Prelude))
	}
	if !at.HasBlock() {
		p.buf.WriteByte(';')
		return
	}
	p.buf.WriteByte(' ')
	p.block(at, level)
}

// block prints "{", the items one level deeper, and "}" at level.
func (p *printer) block(b ast.Block, level int) {
	p.buf.WriteByte('{')

	items := orderedItems(b)
	var seq []*ast.Declaration
	for _, item := range items {
		if d, ok := item.(*ast.Declaration); ok {
			seq = append(seq, d)
		}
	}
	anchored := rules.Anchored(seq)

	for i, item := range items {
		if i > 0 && isTrailing(item) {
			p.buf.WriteByte(' ')
			p.buf.WriteString(item.(*ast.Comment).Text)
			continue
		}
		if i > 0 && isNestedBlock(item) {
			p.buf.WriteByte('\n')
		}
		depth := level + 1
		if d, ok := item.(*ast.Declaration); ok && anchored[d] {
			depth++
		}
		p.newline(depth)
		p.node(item, level+1)
	}

	p.newline(level)
	p.buf.WriteByte('}')
}

func isNestedBlock(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Ruleset:
		return true
	case *ast.AtRule:
		return n.HasBlock()
	}
	return false
}

// orderedItems returns the block items with the declarations sorted into
// canonical order when that is unambiguous: no comments in the block, the
// declarations form one contiguous run, and no longhand precedes its
// shorthand.
func orderedItems(b ast.Block) []ast.Node {
	items := b.Items()
	decls := b.Decls()
	if len(decls) < 2 || !rules.SafeToReorder(decls) {
		return items
	}

	first, last := -1, -1
	for i, item := range items {
		switch item.(type) {
		case *ast.Comment:
			return items
		case *ast.Declaration:
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if last-first+1 != len(decls) {
		return items
	}

	out := make([]ast.Node, 0, len(items))
	out = append(out, items[:first]...)
	for _, d := range rules.ExpectedOrder(decls) {
		out = append(out, d)
	}
	return append(out, items[last+1:]...)
}

// declaration prints the name from its tokens so a comment before the colon
// survives.
func (p *printer) declaration(d *ast.Declaration) {
	p.buf.WriteString(ast.CollapseText(ast.TrimSpace(p.sheet.Tokens[d.Name:d.Colon])))
	p.buf.WriteString(": ")
	p.value(d.Value)
	p.buf.WriteByte(';')
}

// value writes tokens with whitespace runs collapsed and hex colors in
// canonical form.
func (p *printer) value(tokens []token.Token) {
	pending := false
	for _, t := range tokens {
		if t.Kind == token.Whitespace {
			pending = true
			continue
		}
		if pending {
			p.buf.WriteByte(' ')
			pending = false
		}
		text := t.Text
		if t.Kind == token.Hash {
			if hex, ok := rules.CanonicalHex(text); ok {
				text = hex
			}
		}
		p.buf.WriteString(text)
	}
}
