// Package token defines the lexical tokens of a stylesheet and the tokenizer
// that produces them.
package token

import "strings"

// Kind identifies the lexical class of a token
type Kind int

// Token kinds. Unknown is produced for input the tokenizer cannot classify so
// that later stages can report it instead of aborting.
const (
	Unknown Kind = iota
	Whitespace
	Comment
	Ident
	Function // ident immediately followed by "(", text includes the paren
	AtKeyword
	Hash
	String
	Number // number, percentage or dimension ("0", "50%", "1.5em")
	URL
	Colon
	Semicolon
	Comma
	LeftBrace
	RightBrace
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	Delim // single meaningful character such as ".", ">", "+", "&"
	Match // attribute operators "~=", "|=", "^=", "$=", "*=" and "||"
	EOF
)

var kindNames = [...]string{
	Unknown:      "unknown",
	Whitespace:   "whitespace",
	Comment:      "comment",
	Ident:        "ident",
	Function:     "function",
	AtKeyword:    "at-keyword",
	Hash:         "hash",
	String:       "string",
	Number:       "number",
	URL:          "url",
	Colon:        "colon",
	Semicolon:    "semicolon",
	Comma:        "comma",
	LeftBrace:    "brace-open",
	RightBrace:   "brace-close",
	LeftParen:    "paren-open",
	RightParen:   "paren-close",
	LeftBracket:  "bracket-open",
	RightBracket: "bracket-close",
	Delim:        "delim",
	Match:        "match",
	EOF:          "EOF",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Position is a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based byte column
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p sorts before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Advance returns the position reached after consuming text from p.
func (p Position) Advance(text string) Position {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(text)
	return p
}

// Token is a single lexical token. Tokens are values and never mutated after
// the tokenizer returns them.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// End returns the position just past the token.
func (t Token) End() Position {
	return t.Pos.Advance(t.Text)
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsDelim reports whether the token is the delimiter ch.
func (t Token) IsDelim(ch byte) bool {
	return t.Kind == Delim && len(t.Text) == 1 && t.Text[0] == ch
}

// IsTrivia reports whether the token carries no syntax (whitespace or comment).
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}

// HasNewline reports whether the token text spans a line break.
func (t Token) HasNewline() bool {
	return strings.ContainsRune(t.Text, '\n')
}

// Join concatenates the raw text of tokens.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
