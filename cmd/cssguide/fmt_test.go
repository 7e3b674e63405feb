package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssguide/internal/config"
)

func TestFormatStdin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   bool
		wantOut string
		wantErr bool
	}{
		{
			name:    "formats",
			input:   ".a{color:#FFFFFF}",
			wantOut: ".a {\n\tcolor: #fff;\n}\n",
		},
		{
			name:    "check clean",
			input:   ".a {\n\tcolor: #fff;\n}\n",
			check:   true,
			wantOut: "",
		},
		{
			name:    "check dirty",
			input:   ".a{color:#FFFFFF}",
			check:   true,
			wantOut: "<stdin>\n",
			wantErr: true,
		},
		{
			name:    "syntax error",
			input:   ".a { color: red;",
			wantOut: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			err := formatStdin(strings.NewReader(tt.input), &out, &errOut, config.Default(), tt.check)
			if tt.wantErr {
				require.ErrorIs(t, err, errViolations)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestFormatStdin_SyntaxErrorReported(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out, errOut bytes.Buffer
	err := formatStdin(strings.NewReader(".a { color: red;"), &out, &errOut, config.Default(), false)
	require.ErrorIs(t, err, errViolations)
	assert.Contains(t, errOut.String(), "<stdin>:1:")
	assert.Contains(t, errOut.String(), "unclosed block (syntax)")
}

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	printRules(&buf, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 15)
	assert.True(t, strings.HasPrefix(lines[0], "RULE"))
	assert.Contains(t, buf.String(), config.CheckNaming)
	assert.Contains(t, buf.String(), "(preprocessor only)")
}
