// Package lsp serves lint diagnostics and formatting over the Language
// Server Protocol.
package lsp

import (
	"log/slog"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yacobolo/cssguide/internal/config"
)

// Name is reported to clients in the initialize response.
const Name = "cssguide"

// Server is the language server
type Server struct {
	docs    *Store
	cfg     *config.Config
	version string
	logger  *slog.Logger
	handler protocol.Handler
}

// NewServer creates a server that checks documents with cfg. A nil cfg
// means defaults; a nil logger means slog.Default().
func NewServer(cfg *config.Config, version string, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		docs:    NewStore(),
		cfg:     cfg,
		version: version,
		logger:  logger,
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentFormatting: s.formatting,
	}
	return s
}

// RunStdio serves requests on stdin/stdout until the client exits.
func (s *Server) RunStdio() error {
	s.logger.Info("starting language server", "transport", "stdio")
	return server.NewServer(&s.handler, Name, false).RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	s.logger.Info("initializing", "client", clientName)

	syncKind := protocol.TextDocumentSyncKindFull
	openClose := true
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: &openClose,
			Change:    &syncKind,
		},
		DocumentFormattingProvider: true,
	}

	version := s.version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.logger.Info("shutting down", "open_documents", s.docs.Len())
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.logger.Debug("document opened", "uri", doc.URI, "version", doc.Version)

	s.docs.Open(doc.URI, int(doc.Version), doc.Text)
	s.publish(ctx, doc.URI, doc.Text)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc, err := s.docs.Change(uri, int(params.TextDocument.Version), params.ContentChanges)
	if err != nil {
		s.logger.Warn("ignoring change", "uri", uri, "error", err)
		return err
	}

	s.publish(ctx, uri, doc.Text)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.logger.Debug("document closed", "uri", uri)

	if err := s.docs.Close(uri); err != nil {
		return err
	}

	// Clear diagnostics for the closed document
	notify(ctx, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) formatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := params.TextDocument.URI
	doc, ok := s.docs.Get(uri)
	if !ok {
		s.logger.Warn("formatting request for unknown document", "uri", uri)
		return nil, nil
	}
	return FormattingEdits(doc.Text, s.cfg), nil
}

func (s *Server) publish(ctx *glsp.Context, uri, text string) {
	diagnostics := Diagnostics(text, s.cfg)
	s.logger.Debug("publishing diagnostics", "uri", uri, "count", len(diagnostics))

	notify(ctx, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func notify(ctx *glsp.Context, params protocol.PublishDiagnosticsParams) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}
