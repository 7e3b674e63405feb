package cssguide_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssguide"
)

func rulesOf(vs []cssguide.Violation) []string {
	var ids []string
	for _, v := range vs {
		ids = append(ids, v.Rule)
	}
	return ids
}

func TestCheck(t *testing.T) {
	vs := cssguide.Check(".a,\n.b{color:#FFFFFF}", nil)

	ids := rulesOf(vs)
	assert.Contains(t, ids, cssguide.CheckBraceSpacing)
	assert.Contains(t, ids, cssguide.CheckHexColor)
	assert.NotContains(t, ids, cssguide.CheckSelectorPerLine)
}

func TestFormat(t *testing.T) {
	got, remaining := cssguide.Format(".a,\n.b{color:#FFFFFF}", nil)
	assert.Equal(t, ".a,\n.b {\n\tcolor: #fff;\n}\n", got)
	assert.Empty(t, remaining)
}

func TestProcess(t *testing.T) {
	const input = ".a { display: block; color: #333; background: #fff; }"

	t.Run("report mode", func(t *testing.T) {
		res := cssguide.Process(input, nil)
		assert.Equal(t, input, res.Text)
		assert.False(t, res.Fixed)
		assert.False(t, res.Changed)
		assert.Contains(t, rulesOf(res.Violations), cssguide.CheckPropertyOrder)
	})

	t.Run("fix mode", func(t *testing.T) {
		cfg, err := cssguide.NewConfig(cssguide.WithFix(true))
		require.NoError(t, err)

		res := cssguide.Process(input, cfg)
		assert.Equal(t, ".a {\n\tbackground: #fff;\n\tcolor: #333;\n\tdisplay: block;\n}\n", res.Text)
		assert.True(t, res.Fixed)
		assert.True(t, res.Changed)
		assert.Empty(t, res.Violations)
	})

	t.Run("fix mode keeps malformed input", func(t *testing.T) {
		cfg, err := cssguide.NewConfig(cssguide.WithFix(true))
		require.NoError(t, err)

		res := cssguide.Process(".a { color: red;", cfg)
		assert.Equal(t, ".a { color: red;", res.Text)
		assert.False(t, res.Changed)
		assert.Contains(t, rulesOf(res.Violations), cssguide.RuleSyntax)
	})
}

func TestNewConfig_Invalid(t *testing.T) {
	_, err := cssguide.NewConfig(cssguide.WithCheck("no-such-check", true), cssguide.WithBlankLines(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, cssguide.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "no-such-check")
	assert.Contains(t, err.Error(), "blank-lines")
}

func TestRules(t *testing.T) {
	rs := cssguide.Rules()
	require.Len(t, rs, 14)
	for _, r := range rs {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Description)
	}
}
