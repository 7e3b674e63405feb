package lsp

import (
	"fmt"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is an open text document
type Document struct {
	URI     string
	Version int
	Text    string
}

// Store holds the open documents
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewStore creates an empty document store
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Get returns a copy of the document, or false when it is not open.
func (s *Store) Get(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Len returns the number of open documents
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Open starts tracking a document, replacing any previous version.
func (s *Store) Open(uri string, version int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[uri] = &Document{URI: uri, Version: version, Text: text}
}

// Change applies full-document content changes. The last change wins.
// Updates older than the stored version are rejected.
func (s *Store) Change(uri string, version int, changes []any) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, fmt.Errorf("document not found: %s", uri)
	}
	if version < doc.Version {
		return Document{}, fmt.Errorf("rejected stale update: document version is %d but update version is %d", doc.Version, version)
	}

	text := doc.Text
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range != nil {
				return Document{}, fmt.Errorf("incremental change for %s: only full sync is supported", uri)
			}
			text = c.Text
		default:
			return Document{}, fmt.Errorf("unexpected content change %T", change)
		}
	}

	doc.Text = text
	doc.Version = version
	return *doc, nil
}

// Close stops tracking a document
func (s *Store) Close(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[uri]; !ok {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(s.docs, uri)
	return nil
}
