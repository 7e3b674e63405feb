package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Kinds(t *testing.T) {
	tokens := Tokenize(".a{color:#FFF}")

	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	assert.Equal(t, []Kind{Delim, Ident, LeftBrace, Ident, Colon, Hash, RightBrace, EOF}, kinds)
	assert.Equal(t, "#FFF", tokens[5].Text)
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize(".a {\n\tcolor: red;\n}")

	tests := []struct {
		text string
		want Position
	}{
		{".", Position{Line: 1, Column: 1, Offset: 0}},
		{"a", Position{Line: 1, Column: 2, Offset: 1}},
		{"{", Position{Line: 1, Column: 4, Offset: 3}},
		{"color", Position{Line: 2, Column: 2, Offset: 6}},
		{":", Position{Line: 2, Column: 7, Offset: 11}},
		{"red", Position{Line: 2, Column: 9, Offset: 13}},
		{";", Position{Line: 2, Column: 12, Offset: 16}},
		{"}", Position{Line: 3, Column: 1, Offset: 18}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var found *Token
			for i := range tokens {
				if tokens[i].Text == tt.text {
					found = &tokens[i]
					break
				}
			}
			require.NotNil(t, found, "token %q not found", tt.text)
			assert.Equal(t, tt.want, found.Pos)
		})
	}

	last := tokens[len(tokens)-1]
	assert.Equal(t, EOF, last.Kind)
	assert.Equal(t, Position{Line: 3, Column: 2, Offset: 19}, last.Pos)
}

func TestTokenize_Lossless(t *testing.T) {
	inputs := []string{
		"",
		".a,\n.b{color:#FFFFFF}",
		"/* comment */\n@media screen and (min-width: 10px) {\n  .x { margin: 0px }\n}\n",
		"a[type=checkbox] > b ~ c + d::before { content: 'x'; }",
		".a {\n\t  color: red;\r\n}\n",
		".m { width: #{$w}px; @include foo; }",
		"unterminated { content: \"abc\n}",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := Tokenize(input)
			assert.Equal(t, input, Join(tokens))
			assert.Equal(t, EOF, tokens[len(tokens)-1].Kind)
			assert.Equal(t, len(input), tokens[len(tokens)-1].Pos.Offset)
		})
	}
}

func TestTokenize_PreservesTabsAndSpaces(t *testing.T) {
	tokens := Tokenize("\t  .a{}")

	require.NotEmpty(t, tokens)
	assert.Equal(t, Whitespace, tokens[0].Kind)
	assert.Equal(t, "\t  ", tokens[0].Text)
}

func TestTokenize_UnknownCharacter(t *testing.T) {
	tokens := Tokenize(".a { color: `red`; }")

	var unknown []Token
	for _, tok := range tokens {
		if tok.Kind == Unknown {
			unknown = append(unknown, tok)
		}
	}

	require.Len(t, unknown, 2)
	assert.Equal(t, "`", unknown[0].Text)
	assert.Equal(t, Position{Line: 1, Column: 13, Offset: 12}, unknown[0].Pos)
}

func TestTokenize_Numbers(t *testing.T) {
	tokens := Tokenize("0px 50% 1.5em")

	var numbers []string
	for _, tok := range tokens {
		if tok.Kind == Number {
			numbers = append(numbers, tok.Text)
		}
	}
	assert.Equal(t, []string{"0px", "50%", "1.5em"}, numbers)
}

func TestPosition_Advance(t *testing.T) {
	p := Position{Line: 1, Column: 1}
	p = p.Advance("ab\ncd")
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 5}, p)
	assert.True(t, p.IsValid())
	assert.False(t, Position{}.IsValid())
	assert.True(t, Position{Line: 1, Column: 5}.Before(Position{Line: 2, Column: 1}))
	assert.True(t, Position{Line: 2, Column: 1}.Before(Position{Line: 2, Column: 3}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "brace-open", LeftBrace.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
