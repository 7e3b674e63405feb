package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yacobolo/cssguide/internal/token"
)

func at(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		tieBreak TieBreak
		input    []Violation
		want     []string
	}{
		{
			name:     "line then column",
			tieBreak: TieBreakRule,
			input: []Violation{
				{Rule: "b", Pos: at(2, 1)},
				{Rule: "a", Pos: at(1, 5)},
				{Rule: "c", Pos: at(1, 2)},
			},
			want: []string{"c", "a", "b"},
		},
		{
			name:     "same position sorted by rule",
			tieBreak: TieBreakRule,
			input: []Violation{
				{Rule: "zero-unit", Severity: SeverityWarning, Pos: at(1, 1)},
				{Rule: "syntax", Severity: SeverityError, Pos: at(1, 1)},
				{Rule: "hex-color", Severity: SeverityWarning, Pos: at(1, 1)},
			},
			want: []string{"hex-color", "syntax", "zero-unit"},
		},
		{
			name:     "same position sorted by severity",
			tieBreak: TieBreakSeverity,
			input: []Violation{
				{Rule: "zero-unit", Severity: SeverityWarning, Pos: at(1, 1)},
				{Rule: "internal", Severity: SeverityInfo, Pos: at(1, 1)},
				{Rule: "syntax", Severity: SeverityError, Pos: at(1, 1)},
			},
			want: []string{"syntax", "zero-unit", "internal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.input, tt.tieBreak)
			got := make([]string, len(tt.input))
			for i, v := range tt.input {
				got[i] = v.Rule
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount(t *testing.T) {
	vs := []Violation{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: SeverityInfo},
	}

	errs, warns, infos := Count(vs)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
	assert.Equal(t, 1, infos)
	assert.True(t, HasErrors(vs))
	assert.False(t, HasErrors(vs[1:]))
}

func TestViolation_String(t *testing.T) {
	v := New("hex-color", SeverityWarning, at(3, 9), "hex color %q should be lowercase", "#FFF")
	assert.Equal(t, `3:9: hex color "#FFF" should be lowercase (hex-color)`, v.String())
	assert.Equal(t, "warning", v.Severity.String())
}
