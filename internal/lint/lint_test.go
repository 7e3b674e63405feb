package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssguide/internal/ast"
	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/parser"
	"github.com/yacobolo/cssguide/internal/rules"
	"github.com/yacobolo/cssguide/internal/token"
)

var samples = []string{
	".a,\n.b{color:#FFFFFF}",
	".a {\n\tcolor: red;\n}\n.b {\n\ttop: 0px;\n}\n",
	".cb { background: #000; }",
	".a {\n\tdisplay: block;\n\tcolor: #333;\n\tbackground: #fff;\n}\n",
	"@media screen{\n  .x { margin: 0px }\n}\n}\n",
	"input[type=checkbox] { content: 'x' }\n.y {\n\tcolor : red;\t}",
	".a {\r\n    color: #ABCDEF;\r\n}\r\n",
	".a { color: `red`; }\n.b {",
}

func rulesOf(vs []diag.Violation) []string {
	var out []string
	for _, v := range vs {
		out = append(out, v.Rule)
	}
	return out
}

func TestCheck_ScenarioA(t *testing.T) {
	vs := Check(".a,\n.b{color:#FFFFFF}", nil)
	ids := rulesOf(vs)

	assert.Contains(t, ids, config.CheckBraceSpacing)
	assert.Contains(t, ids, config.CheckHexColor)
	assert.NotContains(t, ids, config.CheckSelectorPerLine)

	require.NotEmpty(t, vs)
	assert.Equal(t, config.CheckBraceSpacing, vs[0].Rule)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 6}, vs[0].Pos)
}

func TestCheck_ScenarioB(t *testing.T) {
	vs := Check(".a {\n\tcolor: red;\n}\n.b {\n\tcolor: red;\n}\n", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, config.CheckBlankLines, vs[0].Rule)
	assert.Equal(t, 4, vs[0].Pos.Line)
}

func TestCheck_ScenarioC(t *testing.T) {
	cfg, err := config.New(config.WithCheck(config.CheckNaming, true))
	require.NoError(t, err)

	vs := Check(".cb { background: #000; }", cfg)
	require.Len(t, vs, 1)
	assert.Equal(t, config.CheckNaming, vs[0].Rule)
}

func TestCheck_ScenarioD(t *testing.T) {
	vs := Check(".a {\n\tdisplay: block;\n\tcolor: #333;\n\tbackground: #fff;\n}\n", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, config.CheckPropertyOrder, vs[0].Rule)
	assert.Contains(t, vs[0].Message, `"display"`)
}

func TestCheck_SyntaxMerged(t *testing.T) {
	vs := Check(".a {\n\tcolor: red;\n}\n}\n", nil)
	require.Len(t, vs, 1)
	assert.Equal(t, diag.RuleSyntax, vs[0].Rule)
	assert.Equal(t, diag.SeverityError, vs[0].Severity)
	assert.Equal(t, 4, vs[0].Pos.Line)
}

func TestCheck_DisabledRule(t *testing.T) {
	cfg, err := config.New(config.WithCheck(config.CheckBlankLines, false))
	require.NoError(t, err)

	vs := Check(".a {\n\tcolor: red;\n}\n.b {\n\tcolor: red;\n}\n", cfg)
	assert.Empty(t, vs)
}

func TestCheck_OrderStability(t *testing.T) {
	for _, src := range samples {
		first := Check(src, nil)
		second := Check(src, nil)
		assert.Equal(t, first, second)
	}
}

func TestCheck_Sorted(t *testing.T) {
	for _, src := range samples {
		vs := Check(src, nil)
		for i := 1; i < len(vs); i++ {
			assert.False(t, vs[i].Pos.Before(vs[i-1].Pos), "%q: %v before %v", src, vs[i], vs[i-1])
		}
	}
}

// positionAt computes line and column for a byte offset.
func positionAt(src string, offset int) (line, col int) {
	line = 1 + strings.Count(src[:offset], "\n")
	col = offset - strings.LastIndex(src[:offset], "\n")
	return line, col
}

func TestCheck_PositionFidelity(t *testing.T) {
	cfg, err := config.New(
		config.WithCheck(config.CheckNaming, true),
		config.WithPreprocessor(true),
	)
	require.NoError(t, err)

	for _, src := range samples {
		for _, v := range Check(src, cfg) {
			require.NotEqual(t, diag.RuleInternal, v.Rule, v.String())
			line, col := positionAt(src, v.Pos.Offset)
			assert.Equal(t, line, v.Pos.Line, "%q: %s", src, v)
			assert.Equal(t, col, v.Pos.Column, "%q: %s", src, v)
		}
	}
}

func TestRunRule_Panic(t *testing.T) {
	sheet, _ := parser.Parse(".a {}")
	r := rules.Rule{
		ID: "explodes",
		Check: func(*ast.Stylesheet, *config.Config) []diag.Violation {
			panic("boom")
		},
	}

	vs := runRule(r, sheet, config.Default())
	require.Len(t, vs, 1)
	assert.Equal(t, diag.RuleInternal, vs[0].Rule)
	assert.Equal(t, diag.SeverityInfo, vs[0].Severity)
	assert.Equal(t, "check explodes failed: boom", vs[0].Message)
}

func TestRunRule_OutOfRange(t *testing.T) {
	sheet, _ := parser.Parse(".a {}")
	r := rules.Rule{
		ID: "lost",
		Check: func(*ast.Stylesheet, *config.Config) []diag.Violation {
			return []diag.Violation{
				{Rule: "lost", Pos: token.Position{Line: 1, Column: 2, Offset: 1}},
				{Rule: "lost", Pos: token.Position{Line: 9, Column: 1, Offset: 40}},
			}
		},
	}

	vs := runRule(r, sheet, config.Default())
	require.Len(t, vs, 2)
	assert.Equal(t, "lost", vs[0].Rule)
	assert.Equal(t, diag.RuleInternal, vs[1].Rule)
	assert.Equal(t, token.Position{Line: 1, Column: 1}, vs[1].Pos)
}
