package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssguide/internal/diag"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, IndentTab, cfg.Indent)
	assert.Equal(t, "\t", cfg.IndentUnit())
	assert.Equal(t, byte('"'), cfg.QuoteChar())
	assert.Equal(t, 1, cfg.BlankLines)
	assert.Equal(t, 1, cfg.MaxNestingDepth)
	assert.Equal(t, diag.TieBreakRule, cfg.TieBreak)
	assert.True(t, cfg.ZeroUnitAllowed("margin"))
	assert.True(t, cfg.ZeroUnitAllowed("Padding-Top"))
	assert.False(t, cfg.ZeroUnitAllowed("line-height"))
	assert.False(t, cfg.Enabled(CheckNaming))
	assert.True(t, cfg.Enabled(CheckHexColor))
}

func TestNew_Options(t *testing.T) {
	cfg, err := New(
		WithIndent(IndentSpace, 2),
		WithQuote(QuoteSingle),
		WithBlankLines(2),
		WithCheck(CheckNaming, true),
		WithCheck(CheckHexColor, false),
		WithTieBreak(diag.TieBreakSeverity),
	)
	require.NoError(t, err)

	assert.Equal(t, "  ", cfg.IndentUnit())
	assert.Equal(t, byte('\''), cfg.QuoteChar())
	assert.Equal(t, 2, cfg.BlankLines)
	assert.True(t, cfg.Enabled(CheckNaming))
	assert.False(t, cfg.Enabled(CheckHexColor))
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr []string
	}{
		{
			name:    "unknown check",
			opts:    []Option{WithCheck("no-such-check", true)},
			wantErr: []string{`unknown check "no-such-check"`},
		},
		{
			name:    "negative blank lines",
			opts:    []Option{WithBlankLines(-1)},
			wantErr: []string{"blank-lines must not be negative, got -1"},
		},
		{
			name:    "bad indent",
			opts:    []Option{WithIndent("mixed", 0)},
			wantErr: []string{`indent must be "tab" or "space", got "mixed"`, "indent-width must be positive, got 0"},
		},
		{
			name:    "bad quote and tie-break",
			opts:    []Option{WithQuote("back"), WithTieBreak("random")},
			wantErr: []string{`quote must be`, `tie-break must be`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, ErrInvalid))
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestNamingAllowed(t *testing.T) {
	cfg := Default()
	cfg.NamingAllow = []string{"html", ".js-hook", "cb"}

	assert.True(t, cfg.NamingAllowed("html"))
	assert.True(t, cfg.NamingAllowed("HTML"))
	assert.True(t, cfg.NamingAllowed(".js-hook"))
	assert.False(t, cfg.NamingAllowed("#js-hook"))
	assert.True(t, cfg.NamingAllowed(".cb"))
	assert.False(t, cfg.NamingAllowed("div"))
}

func TestClone(t *testing.T) {
	cfg := Default()
	c := cfg.Clone()
	c.Checks[CheckNaming] = true
	c.NamingAllow[0] = "div"

	assert.False(t, cfg.Enabled(CheckNaming))
	assert.Equal(t, "html", cfg.NamingAllow[0])
}

func TestCheckIDs(t *testing.T) {
	ids := CheckIDs()
	assert.Len(t, ids, 14)
	assert.IsNonDecreasing(t, ids)
}
