package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/diag"
	"github.com/yacobolo/cssguide/internal/format"
	"github.com/yacobolo/cssguide/internal/lint"
)

const source = "cssguide"

// Diagnostics lints text and converts the violations to protocol form.
func Diagnostics(text string, cfg *config.Config) []protocol.Diagnostic {
	vs := lint.Check(text, cfg)
	idx := newLineIndex(text)

	out := make([]protocol.Diagnostic, 0, len(vs))
	for _, v := range vs {
		out = append(out, toDiagnostic(idx, v))
	}
	return out
}

func toDiagnostic(idx lineIndex, v diag.Violation) protocol.Diagnostic {
	severity := toSeverity(v.Severity)
	src := source
	return protocol.Diagnostic{
		Range:    idx.rangeOf(v.Pos, v.End),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: v.Rule},
		Source:   &src,
		Message:  v.Message,
	}
}

func toSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// FormattingEdits returns a single whole-document edit when formatting
// changes the text, and no edits otherwise. Text with syntax errors is
// never rewritten.
func FormattingEdits(text string, cfg *config.Config) []protocol.TextEdit {
	formatted, _ := format.Format(text, cfg)
	if formatted == text {
		return []protocol.TextEdit{}
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   newLineIndex(text).end(),
		},
		NewText: formatted,
	}}
}
