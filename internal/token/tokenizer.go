package token

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// meaningfulDelims are the single characters that carry selector, value or
// preprocessor meaning. Any other delimiter is reported as Unknown.
const meaningfulDelims = ".>+~*&!/=%$|^#@\\<-?,:"

// Tokenize converts stylesheet text into tokens. It never fails: input the
// lexer cannot classify becomes Unknown tokens, and the result always ends
// with an EOF token. Whitespace runs are kept verbatim so tabs and spaces
// stay distinguishable.
func Tokenize(text string) []Token {
	lexer := css.NewLexer(parse.NewInputString(text))
	pos := Position{Line: 1, Column: 1}

	tokens := make([]Token, 0, len(text)/3+1)
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken || len(data) == 0 {
			break
		}

		raw := string(data)
		tokens = append(tokens, Token{Kind: classify(tt, raw), Text: raw, Pos: pos})
		pos = pos.Advance(raw)
	}

	// The lexer stops at EOF; anything it refused to consume is kept so the
	// token stream still reproduces the input.
	if pos.Offset < len(text) {
		rest := text[pos.Offset:]
		tokens = append(tokens, Token{Kind: Unknown, Text: rest, Pos: pos})
		pos = pos.Advance(rest)
	}

	return append(tokens, Token{Kind: EOF, Pos: pos})
}

// classify maps a lexer token type onto a Kind
func classify(tt css.TokenType, raw string) Kind {
	switch tt {
	case css.WhitespaceToken:
		return Whitespace
	case css.CommentToken:
		return Comment
	case css.IdentToken, css.CustomPropertyNameToken:
		return Ident
	case css.FunctionToken:
		return Function
	case css.AtKeywordToken:
		return AtKeyword
	case css.HashToken:
		return Hash
	case css.StringToken:
		return String
	case css.URLToken:
		return URL
	case css.NumberToken, css.PercentageToken, css.DimensionToken, css.UnicodeRangeToken:
		return Number
	case css.ColonToken:
		return Colon
	case css.SemicolonToken:
		return Semicolon
	case css.CommaToken:
		return Comma
	case css.LeftBraceToken:
		return LeftBrace
	case css.RightBraceToken:
		return RightBrace
	case css.LeftParenthesisToken:
		return LeftParen
	case css.RightParenthesisToken:
		return RightParen
	case css.LeftBracketToken:
		return LeftBracket
	case css.RightBracketToken:
		return RightBracket
	case css.IncludeMatchToken, css.DashMatchToken, css.PrefixMatchToken,
		css.SuffixMatchToken, css.SubstringMatchToken, css.ColumnToken:
		return Match
	case css.CDOToken, css.CDCToken:
		return Delim
	case css.DelimToken:
		if len(raw) == 1 && strings.IndexByte(meaningfulDelims, raw[0]) >= 0 {
			return Delim
		}
		return Unknown
	default:
		// bad strings, bad urls
		return Unknown
	}
}
