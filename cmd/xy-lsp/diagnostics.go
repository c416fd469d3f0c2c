package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/signadot/xyaml"
	"github.com/signadot/xyaml/eval"
	"github.com/signadot/xyaml/ir"
	"github.com/signadot/xyaml/parse"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri      string
	content  string
	version  int32
	node     *ir.Node
	parseErr error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	node, err := parse.Parse([]byte(content))
	doc := &document{
		uri:      uri,
		content:  content,
		version:  version,
		node:     node,
		parseErr: err,
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	return s.publishDiagnostics(ctx, doc)
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// full sync: the last change holds the whole text
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.docs.put(uri, text, params.TextDocument.Version)
	return s.publishDiagnostics(ctx, doc)
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.delete(uri)
	return s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) error {
	return s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Version:     uint32(doc.version),
		Diagnostics: s.diagnose(doc),
	})
}

// diagnose loads doc without overrides and reports the first failure.
func (s *Server) diagnose(doc *document) []protocol.Diagnostic {
	err := doc.parseErr
	if err == nil {
		_, err = s.loader.LoadNode(doc.node.Clone(), nil)
	}
	if err == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{{
		Range:    errorRange(doc, err),
		Severity: protocol.DiagnosticSeverityError,
		Code:     errorCode(err),
		Source:   lsName,
		Message:  err.Error(),
	}}
}

var errorKinds = []struct {
	err  error
	code string
}{
	{xyaml.ErrMalformedDocument, "malformed-document"},
	{xyaml.ErrMissingReference, "missing-reference"},
	{xyaml.ErrCircularReference, "circular-reference"},
	{xyaml.ErrReferenceChainTooLong, "reference-chain-too-long"},
	{xyaml.ErrUnknownConstructor, "unknown-constructor"},
	{xyaml.ErrArgumentBinding, "argument-binding"},
	{xyaml.ErrConstructorFailed, "constructor-failed"},
}

func errorCode(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return "error"
}

// errorRange places err on the line of the node it names, or at the
// start of the document.
func errorRange(doc *document, err error) protocol.Range {
	line, col := 0, 0
	var (
		pErr    *parse.Error
		cErr    *eval.Error
		pathErr *xyaml.PathError
	)
	switch {
	case errors.As(err, &pErr):
		line, col = pErr.Line, pErr.Column
	case errors.As(err, &cErr):
		line, col = nodePos(doc.node, cErr.Path)
	case errors.As(err, &pathErr):
		line, col = nodePos(doc.node, pathErr.Path)
	}
	if line == 0 {
		return protocol.Range{}
	}
	start := protocol.Position{Line: uint32(line - 1), Character: uint32(max(col-1, 0))}
	end := protocol.Position{Line: start.Line, Character: uint32(lineLen(doc.content, line-1))}
	if end.Character < start.Character {
		end.Character = start.Character
	}
	return protocol.Range{Start: start, End: end}
}

func nodePos(root *ir.Node, path string) (int, int) {
	node := nodeAt(root, path)
	if node == nil {
		return 0, 0
	}
	return node.Line, node.Column
}

// nodeAt returns the value node at key path path.
func nodeAt(root *ir.Node, path string) *ir.Node {
	if root == nil {
		return nil
	}
	var res *ir.Node
	_ = root.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if res != nil {
			return false, nil
		}
		if !isPost && n.KPath() == path {
			res = n
		}
		return res == nil, nil
	})
	return res
}

func lineLen(content string, line int) int {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return 0
	}
	return len(strings.TrimRight(lines[line], "\r"))
}
