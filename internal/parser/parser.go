// Package parser builds an ast.Stylesheet from a token stream.
//
// The parser never fails. Structural problems are returned as syntax
// violations and parsing continues with the next plausible item, so a
// partially broken file still yields a full tree.
package parser

import (
	"strings"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/token"
)

// Parse tokenizes and parses text.
func Parse(text string) (*ast.Stylesheet, []diag.Violation) {
	return ParseTokens(token.Tokenize(text))
}

// ParseTokens parses a token stream produced by token.Tokenize. The stream
// must end with an EOF token; one is appended otherwise.
func ParseTokens(tokens []token.Token) (*ast.Stylesheet, []diag.Violation) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		var end token.Position
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].End()
		} else {
			end = token.Position{Line: 1, Column: 1}
		}
		tokens = append(tokens, token.Token{Kind: token.EOF, Pos: end})
	}

	source := token.Join(tokens)
	sheet := &ast.Stylesheet{
		Source: source,
		Lines:  splitLines(source),
		Tokens: tokens,
	}

	p := &parser{tokens: tokens}
	p.reportUnknown()
	p.reportUnbalanced()
	sheet.Nodes = p.parseTopLevel()

	return sheet, p.diags
}

// splitLines splits on "\n" and drops a trailing "\r" from each line.
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type parser struct {
	tokens []token.Token
	pos    int
	diags  []diag.Violation
}

func (p *parser) cur() token.Token { return p.tokens[p.pos] }

func (p *parser) errorf(tok token.Token, format string, args ...any) {
	v := diag.New(diag.RuleSyntax, diag.SeverityError, tok.Pos, format, args...)
	v.End = tok.End()
	p.diags = append(p.diags, v)
}

// reportUnknown reports every token the lexer could not classify.
func (p *parser) reportUnknown() {
	for _, t := range p.tokens {
		if t.Kind != token.Unknown {
			continue
		}
		switch {
		case strings.HasPrefix(t.Text, `"`) || strings.HasPrefix(t.Text, "'"):
			p.errorf(t, "unterminated string")
		case strings.HasPrefix(strings.ToLower(t.Text), "url("):
			p.errorf(t, "malformed url")
		default:
			r := []rune(t.Text)
			p.errorf(t, "unexpected character %q", string(r[0]))
		}
	}
}

// reportUnbalanced reports every "(" or "[" that is still open at the end
// of input. Lookahead skips braces and semicolons inside brackets, so an
// unclosed one swallows the rest of the document.
func (p *parser) reportUnbalanced() {
	var open []int
	for i, t := range p.tokens {
		switch t.Kind {
		case token.LeftParen, token.Function, token.LeftBracket:
			open = append(open, i)
		case token.RightParen, token.RightBracket:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
	for _, i := range open {
		if p.tokens[i].Kind == token.LeftBracket {
			p.errorf(p.tokens[i], "unclosed bracket")
		} else {
			p.errorf(p.tokens[i], "unclosed parenthesis")
		}
	}
}

func (p *parser) parseTopLevel() []ast.Node {
	var (
		nodes   []ast.Node
		prevEnd token.Position
	)
	for {
		t := p.cur()
		var n ast.Node
		switch t.Kind {
		case token.EOF:
			return nodes
		case token.Whitespace, token.Semicolon:
			p.pos++
			continue
		case token.RightBrace:
			p.errorf(t, "unmatched closing brace")
			p.pos++
			continue
		case token.Comment:
			n = p.parseComment(prevEnd)
		case token.AtKeyword:
			n = p.parseAtRule(nil, 0)
		default:
			if rs := p.parseRuleset(nil, 0); rs != nil {
				n = rs
			}
		}
		if n != nil {
			nodes = append(nodes, n)
			prevEnd = n.Span().End
		}
	}
}

func (p *parser) parseComment(prevEnd token.Position) *ast.Comment {
	t := p.cur()
	p.pos++
	return &ast.Comment{
		Text:     t.Text,
		Index:    p.pos - 1,
		Trailing: prevEnd.IsValid() && prevEnd.Line == t.Pos.Line,
		Loc:      ast.Span{Start: t.Pos, End: t.End()},
	}
}

// parseBlock parses block items up to and including the closing brace.
// It returns the index of "}" or -1 when the input ends first.
func (p *parser) parseBlock(owner ast.Node, depth int) ([]ast.Node, []*ast.Declaration, int) {
	var (
		items   []ast.Node
		decls   []*ast.Declaration
		prevEnd token.Position
	)
	for {
		t := p.cur()
		var n ast.Node
		switch t.Kind {
		case token.EOF:
			return items, decls, -1
		case token.RightBrace:
			p.pos++
			return items, decls, p.pos - 1
		case token.Whitespace, token.Semicolon:
			p.pos++
			continue
		case token.Comment:
			n = p.parseComment(prevEnd)
		case token.AtKeyword:
			n = p.parseAtRule(owner, depth)
		default:
			if p.lookahead(p.pos).Kind == token.LeftBrace {
				if rs := p.parseRuleset(owner, depth); rs != nil {
					n = rs
				}
			} else if d := p.parseDeclaration(); d != nil {
				decls = append(decls, d)
				n = d
			}
		}
		if n != nil {
			items = append(items, n)
			prevEnd = n.Span().End
		}
	}
}

// lookahead returns the first "{", ";" or "}" at nesting level zero starting
// at index i, or the EOF token. Parentheses, brackets and #{...}
// interpolation are skipped.
func (p *parser) lookahead(i int) token.Token {
	return p.tokens[p.scan(i)]
}

// scan is lookahead returning the index.
func (p *parser) scan(i int) int {
	depth := 0
	for ; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch t.Kind {
		case token.EOF:
			return i
		case token.LeftParen, token.Function, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBracket:
			if depth > 0 {
				depth--
			}
		case token.Delim:
			if t.Text == "#" && i+1 < len(p.tokens) && p.tokens[i+1].Kind == token.LeftBrace {
				i = p.skipInterpolation(i + 1)
			}
		case token.LeftBrace, token.Semicolon, token.RightBrace:
			if depth == 0 {
				return i
			}
		}
	}
	return len(p.tokens) - 1
}

// skipInterpolation returns the index of the brace closing the one at open,
// or the last index before EOF.
func (p *parser) skipInterpolation(open int) int {
	depth := 0
	for i := open; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case token.LeftBrace:
			depth++
		case token.RightBrace:
			depth--
			if depth == 0 {
				return i
			}
		case token.EOF:
			return i - 1
		}
	}
	return len(p.tokens) - 2
}

func (p *parser) parseRuleset(parent ast.Node, depth int) *ast.Ruleset {
	start := p.pos
	stop := p.scan(start)
	t := p.tokens[stop]
	if t.Kind != token.LeftBrace {
		p.errorf(p.tokens[start], "expected '{' after selector")
		if t.Kind == token.Semicolon {
			stop++
		}
		p.pos = stop
		return nil
	}

	rs := &ast.Ruleset{
		Selectors: p.splitSelectors(start, stop),
		Open:      stop,
		Depth:     depth,
		Parent:    parent,
	}
	if len(rs.Selectors) == 0 {
		p.errorf(t, "expected selector before '{'")
	}
	p.pos = stop + 1
	rs.Body, rs.Declarations, rs.Close = p.parseBlock(rs, depth+1)

	rs.Loc.Start = p.tokens[start].Pos
	if rs.Close >= 0 {
		rs.Loc.End = p.tokens[rs.Close].End()
	} else {
		p.errorf(p.tokens[rs.Open], "unclosed block")
		rs.Loc.End = p.cur().Pos
	}
	return rs
}

// splitSelectors splits the prelude tokens [start, end) on top-level commas.
// Comments inside a selector stay part of it; only whitespace is trimmed.
func (p *parser) splitSelectors(start, end int) []*ast.Selector {
	var (
		out   []*ast.Selector
		depth int
		from  = start
	)
	// comma is the separator next to the segment, -1 when there is none
	add := func(from, to, comma int) {
		for from < to && p.tokens[from].Kind == token.Whitespace {
			from++
		}
		for to > from && p.tokens[to-1].Kind == token.Whitespace {
			to--
		}
		if len(ast.TrimTrivia(p.tokens[from:to])) == 0 {
			if comma >= 0 {
				p.errorf(p.tokens[comma], "empty selector in selector list")
			}
			return
		}
		out = append(out, &ast.Selector{
			Text:  ast.CollapseText(p.tokens[from:to]),
			Start: from,
			End:   to,
			Pos:   p.tokens[from].Pos,
		})
	}
	for i := start; i < end; i++ {
		switch p.tokens[i].Kind {
		case token.LeftParen, token.Function, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBracket:
			if depth > 0 {
				depth--
			}
		case token.Comma:
			if depth == 0 {
				add(from, i, i)
				from = i + 1
			}
		}
	}
	last := -1
	if from > start {
		last = from - 1
	}
	add(from, end, last)
	return out
}

func (p *parser) parseDeclaration() *ast.Declaration {
	start := p.pos
	colon := -1
	i := start
	for ; ; i++ {
		t := p.tokens[i]
		if t.Kind == token.Colon {
			colon = i
			break
		}
		if t.Kind == token.Semicolon || t.Kind == token.RightBrace || t.Kind == token.EOF {
			break
		}
	}
	if colon < 0 {
		p.errorf(p.tokens[start], "expected ':' after property %q",
			ast.CollapseText(ast.TrimTrivia(p.tokens[start:i])))
		if p.tokens[i].Kind == token.Semicolon {
			i++
		}
		p.pos = i
		return nil
	}

	name := ast.TrimTrivia(p.tokens[start:colon])
	if len(name) == 0 {
		p.errorf(p.tokens[colon], "missing property name")
	}

	end := p.scan(colon + 1)
	d := &ast.Declaration{
		Property:   ast.CollapseText(name),
		Name:       start,
		Colon:      colon,
		Semicolon:  -1,
		ValueStart: colon + 1,
		ValueEnd:   end,
		Value:      ast.TrimSpace(p.tokens[colon+1 : end]),
	}
	if len(d.Value) == 0 {
		p.errorf(p.tokens[colon], "empty value for property %q", d.Property)
	}

	d.Loc.Start = p.tokens[start].Pos
	switch {
	case p.tokens[end].Kind == token.Semicolon:
		d.Semicolon = end
		d.Loc.End = p.tokens[end].End()
		p.pos = end + 1
	case len(d.Value) > 0:
		d.Loc.End = d.Value[len(d.Value)-1].End()
		p.pos = end
	default:
		d.Loc.End = p.tokens[colon].End()
		p.pos = end
	}
	return d
}

func (p *parser) parseAtRule(parent ast.Node, depth int) *ast.AtRule {
	kw := p.pos
	stop := p.scan(kw + 1)

	at := &ast.AtRule{
		Name:      strings.TrimPrefix(p.tokens[kw].Text, "@"),
		Keyword:   kw,
		Prelude:   ast.TrimSpace(p.tokens[kw+1 : stop]),
		Open:      -1,
		Close:     -1,
		Semicolon: -1,
		Parent:    parent,
	}
	at.Loc.Start = p.tokens[kw].Pos

	switch p.tokens[stop].Kind {
	case token.LeftBrace:
		at.Open = stop
		p.pos = stop + 1
		at.Body, at.Declarations, at.Close = p.parseBlock(at, depth)
		if at.Close >= 0 {
			at.Loc.End = p.tokens[at.Close].End()
		} else {
			p.errorf(p.tokens[at.Open], "unclosed block")
			at.Loc.End = p.cur().Pos
		}
	case token.Semicolon:
		at.Semicolon = stop
		at.Loc.End = p.tokens[stop].End()
		p.pos = stop + 1
	default:
		// statement terminated by the enclosing "}" or the end of input
		at.Loc.End = p.tokens[stop-1].End()
		if len(at.Prelude) > 0 {
			at.Loc.End = at.Prelude[len(at.Prelude)-1].End()
		}
		p.pos = stop
	}
	return at
}
