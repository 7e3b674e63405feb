package lsp

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yacobolo/cssguide/internal/config"
	"github.com/yacobolo/cssguide/internal/token"
)

func TestByteOffsetToUTF16(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		offset int
		want   int
	}{
		{name: "ascii", s: "color: red", offset: 5, want: 5},
		{name: "zero", s: "abc", offset: 0, want: 0},
		{name: "past end clamps", s: "abc", offset: 10, want: 3},
		{name: "two-byte rune", s: "é: x", offset: 3, want: 2},
		{name: "astral rune counts twice", s: "\"😀\" x", offset: 6, want: 4},
		{name: "inside a rune stops before it", s: "é", offset: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, byteOffsetToUTF16(tt.s, tt.offset))
		})
	}
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex(".a {\r\n\tcontent: \"😀\"; color: red\r\n}")

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, idx.position(token.Position{Line: 1, Column: 1}))
	// "color" starts after the emoji, which is 4 bytes but 2 UTF-16 units.
	assert.Equal(t, protocol.Position{Line: 1, Character: 16}, idx.position(token.Position{Line: 2, Column: 19}))
	assert.Equal(t, protocol.Position{Line: 2, Character: 1}, idx.end())
	assert.Equal(t, idx.end(), idx.position(token.Position{Line: 9, Column: 1}))

	r := idx.rangeOf(token.Position{Line: 1, Column: 2}, token.Position{})
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 1},
		End:   protocol.Position{Line: 0, Character: 2},
	}, r)

	r = idx.rangeOf(token.Position{Line: 1, Column: 5}, token.Position{})
	assert.Equal(t, r.Start, r.End, "end of line yields an empty range")
}

func TestDiagnostics(t *testing.T) {
	ds := Diagnostics(".a{color:#FFFFFF}", nil)
	require.NotEmpty(t, ds)

	var rules []any
	for _, d := range ds {
		require.NotNil(t, d.Source)
		assert.Equal(t, "cssguide", *d.Source)
		require.NotNil(t, d.Severity)
		assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
		rules = append(rules, d.Code.Value)
	}
	assert.Contains(t, rules, config.CheckHexColor)
	assert.Contains(t, rules, config.CheckBraceSpacing)

	var errors int
	for _, d := range Diagnostics(".a { color: red;", nil) {
		if *d.Severity == protocol.DiagnosticSeverityError {
			errors++
		}
	}
	assert.Equal(t, 1, errors)
}

func TestFormattingEdits(t *testing.T) {
	edits := FormattingEdits(".a{color:#FFFFFF}\n.b{}", nil)
	require.Len(t, edits, 1)
	assert.Equal(t, protocol.Position{}, edits[0].Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, edits[0].Range.End)
	assert.Equal(t, ".a {\n\tcolor: #fff;\n}\n\n.b {\n}\n", edits[0].NewText)

	assert.Empty(t, FormattingEdits(".a {\n\tcolor: red;\n}\n", nil), "already formatted")
	assert.Empty(t, FormattingEdits(".a { color: red;", nil), "syntax errors are never rewritten")
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Open("file:///a.css", 1, "one")

	doc, err := s.Change("file:///a.css", 2, []any{
		protocol.TextDocumentContentChangeEventWhole{Text: "two"},
		protocol.TextDocumentContentChangeEvent{Text: "three"},
	})
	require.NoError(t, err)
	assert.Equal(t, "three", doc.Text)
	assert.Equal(t, 2, doc.Version)

	_, err = s.Change("file:///a.css", 1, []any{protocol.TextDocumentContentChangeEventWhole{Text: "stale"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")

	_, err = s.Change("file:///a.css", 3, []any{protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{},
		Text:  "x",
	}})
	require.Error(t, err)

	got, ok := s.Get("file:///a.css")
	require.True(t, ok)
	assert.Equal(t, "three", got.Text)

	require.NoError(t, s.Close("file:///a.css"))
	assert.Error(t, s.Close("file:///a.css"))
	_, err = s.Change("file:///a.css", 4, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func TestServer_DocumentLifecycle(t *testing.T) {
	s := NewServer(nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := &recorder{}
	ctx := rec.context()
	uri := "file:///a.css"

	require.NoError(t, s.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "css", Version: 1, Text: ".a{color:#FFF}"},
	}))
	require.Len(t, rec.published, 1)
	assert.NotEmpty(t, rec.published[0].Diagnostics)

	require.NoError(t, s.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: ".a {\n\tcolor: #fff;\n}\n"}},
	}))
	require.Len(t, rec.published, 2)
	assert.Empty(t, rec.published[1].Diagnostics)

	edits, err := s.formatting(ctx, &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, edits)

	require.NoError(t, s.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, rec.published, 3)
	assert.Empty(t, rec.published[2].Diagnostics)
	assert.NotNil(t, rec.published[2].Diagnostics, "clearing sends an empty list, not null")
}

func TestServer_Initialize(t *testing.T) {
	s := NewServer(nil, "1.2.3", slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := s.initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	result, ok := res.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, Name, result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *result.ServerInfo.Version)
	assert.Equal(t, true, result.Capabilities.DocumentFormattingProvider)
}
