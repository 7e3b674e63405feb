// Package ast declares the structural tree built from a token stream.
//
// A Stylesheet owns the source text, its tokens and an ordered list of
// top-level nodes. Nodes refer to their tokens by index into
// Stylesheet.Tokens so checks can inspect the exact surrounding whitespace.
package ast

import (
	"strings"

	"github.com/yacobolo/cssguide/internal/token"
)

// Span is a half-open source range [Start, End).
type Span struct {
	Start token.Position
	End   token.Position
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return s.Start.Offset <= o.Start.Offset && o.End.Offset <= s.End.Offset
}

// Node represents a node in the stylesheet tree.
type Node interface {
	Span() Span
	node()
}

// Block is a node with a braced body: a Ruleset or an AtRule with a block.
type Block interface {
	Node
	Items() []Node
	Decls() []*Declaration
}

func (*Comment) node()     {}
func (*Ruleset) node()     {}
func (*Declaration) node() {}
func (*AtRule) node()      {}

// Stylesheet is the root of the tree. Its lifetime is one lint or format
// invocation.
type Stylesheet struct {
	Source string
	Lines  []string // source lines without line terminators
	Tokens []token.Token
	Nodes  []Node
}

// Line returns the 1-based source line n, or "" when out of range.
func (s *Stylesheet) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	return s.Lines[n-1]
}

// Comment is a /* */ comment at top level or inside a block.
type Comment struct {
	Text     string
	Index    int  // token index
	Trailing bool // starts on the line where the previous block item ended
	Loc      Span
}

// Span implements Node
func (c *Comment) Span() Span { return c.Loc }

// Selector is one comma-separated selector of a ruleset prelude.
type Selector struct {
	Text  string // whitespace runs collapsed to one space
	Start int    // first token index
	End   int    // one past the last token index
	Pos   token.Position
}

// Ruleset is a selector group plus its declaration block.
type Ruleset struct {
	Selectors    []*Selector
	Body         []Node // declarations, comments, at-rules and nested rulesets in order
	Declarations []*Declaration
	Open         int  // index of "{"
	Close        int  // index of "}", -1 when the block is unclosed
	Depth        int  // number of enclosing rulesets
	Parent       Node // enclosing *Ruleset or *AtRule, nil at top level
	Loc          Span
}

// Span implements Node
func (r *Ruleset) Span() Span { return r.Loc }

// Items implements Block
func (r *Ruleset) Items() []Node { return r.Body }

// Decls implements Block
func (r *Ruleset) Decls() []*Declaration { return r.Declarations }

// Closed reports whether the ruleset has a closing brace.
func (r *Ruleset) Closed() bool { return r.Close >= 0 }

// Declaration is a property:value pair.
type Declaration struct {
	Property   string
	Name       int           // index of the first property token
	Colon      int           // index of ":"
	Semicolon  int           // index of ";", -1 when missing
	ValueStart int           // first raw value token (just after the colon)
	ValueEnd   int           // one past the last raw value token
	Value      []token.Token // value tokens without surrounding trivia
	Loc        Span
}

// Span implements Node
func (d *Declaration) Span() Span { return d.Loc }

// HasSemicolon reports whether the declaration is terminated by ";".
func (d *Declaration) HasSemicolon() bool { return d.Semicolon >= 0 }

// NameLower returns the lowercased property name.
func (d *Declaration) NameLower() string {
	return strings.ToLower(d.Property)
}

// VendorPrefix returns the vendor prefix ("-webkit-") or "".
func (d *Declaration) VendorPrefix() string {
	return VendorPrefix(d.NameLower())
}

// Unprefixed returns the lowercased property name without vendor prefix.
func (d *Declaration) Unprefixed() string {
	name := d.NameLower()
	return strings.TrimPrefix(name, VendorPrefix(name))
}

// ValueText returns the value with whitespace runs collapsed to one space.
func (d *Declaration) ValueText() string {
	return CollapseText(d.Value)
}

// AtRule is an "@name prelude;" statement or an "@name prelude { ... }" block.
type AtRule struct {
	Name         string // without "@"
	Keyword      int    // index of the at-keyword token
	Prelude      []token.Token
	Body         []Node
	Declarations []*Declaration
	Open         int  // index of "{", -1 for statements
	Close        int  // index of "}", -1 when absent or unclosed
	Semicolon    int  // index of ";", -1 when absent
	Parent       Node // enclosing node, nil at top level
	Loc          Span
}

// Span implements Node
func (a *AtRule) Span() Span { return a.Loc }

// Items implements Block
func (a *AtRule) Items() []Node { return a.Body }

// Decls implements Block
func (a *AtRule) Decls() []*Declaration { return a.Declarations }

// HasBlock reports whether the at-rule has a braced body.
func (a *AtRule) HasBlock() bool { return a.Open >= 0 }

// NameLower returns the lowercased at-rule name.
func (a *AtRule) NameLower() string { return strings.ToLower(a.Name) }

// VendorPrefix returns the vendor prefix of a lowercased name, e.g. "-moz-".
// Custom properties ("--x") have none.
func VendorPrefix(name string) string {
	if len(name) < 3 || name[0] != '-' || name[1] == '-' {
		return ""
	}
	end := strings.IndexByte(name[1:], '-')
	if end <= 0 {
		return ""
	}
	return name[:end+2]
}

// CollapseText joins tokens, replacing every whitespace run with a single
// space and trimming both ends.
func CollapseText(tokens []token.Token) string {
	var b strings.Builder
	pendingSpace := false
	for _, t := range tokens {
		if t.Kind == token.Whitespace {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// TrimTrivia strips whitespace and comment tokens from both ends.
func TrimTrivia(tokens []token.Token) []token.Token {
	start, end := 0, len(tokens)
	for start < end && tokens[start].IsTrivia() {
		start++
	}
	for end > start && tokens[end-1].IsTrivia() {
		end--
	}
	return tokens[start:end]
}

// TrimSpace strips whitespace tokens from both ends, keeping comments.
func TrimSpace(tokens []token.Token) []token.Token {
	start, end := 0, len(tokens)
	for start < end && tokens[start].Kind == token.Whitespace {
		start++
	}
	for end > start && tokens[end-1].Kind == token.Whitespace {
		end--
	}
	return tokens[start:end]
}

// Walk traverses nodes depth-first in source order. If fn returns false the
// children of that node are skipped.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if b, ok := n.(Block); ok {
			Walk(b.Items(), fn)
		}
	}
}

// Rulesets returns every ruleset in the stylesheet, nested ones included, in
// source order.
func (s *Stylesheet) Rulesets() []*Ruleset {
	var out []*Ruleset
	Walk(s.Nodes, func(n Node) bool {
		if rs, ok := n.(*Ruleset); ok {
			out = append(out, rs)
		}
		return true
	})
	return out
}

// Blocks returns every braced node in source order.
func (s *Stylesheet) Blocks() []Block {
	var out []Block
	Walk(s.Nodes, func(n Node) bool {
		switch b := n.(type) {
		case *Ruleset:
			out = append(out, b)
		case *AtRule:
			if b.HasBlock() {
				out = append(out, b)
			}
		}
		return true
	})
	return out
}
