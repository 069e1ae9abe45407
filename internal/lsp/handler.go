package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"firrtl/grammar"
	"firrtl/internal/ast"
)

var log = commonlog.GetLogger("firrtl.lsp")

// document is the server's view of one open file.
type document struct {
	text        string
	circuit     *ast.Circuit // last circuit that parsed, nil if none has
	diagnostics []protocol.Diagnostic
}

// FirrtlHandler implements the LSP server handlers for FIRRTL
type FirrtlHandler struct {
	mu   sync.RWMutex
	docs map[protocol.DocumentUri]*document
}

// NewFirrtlHandler creates and returns a new FirrtlHandler instance
func NewFirrtlHandler() *FirrtlHandler {
	return &FirrtlHandler{
		docs: make(map[protocol.DocumentUri]*document),
	}
}

// Handler wires the handler methods into a glsp protocol handler.
func (h *FirrtlHandler) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *FirrtlHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *FirrtlHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("FIRRTL LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *FirrtlHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("FIRRTL LSP Shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

// SetTrace handles $/setTrace
func (h *FirrtlHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *FirrtlHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("Opened file: %s", params.TextDocument.URI)

	doc, err := h.update(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, doc.diagnostics)
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *FirrtlHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("Closed file: %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, params.TextDocument.URI)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
// The server asks for full sync, so the last change holds the whole text.
func (h *FirrtlHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("Changed file: %s", params.TextDocument.URI)

	var text string
	var found bool
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, found = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text, found = c.Text, true
			}
		}
	}
	if !found {
		return nil
	}

	doc, err := h.update(params.TextDocument.URI, text)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, doc.diagnostics)
	return nil
}

// TextDocumentCompletion offers keywords, primitive operations and the
// names declared in the last version of the document that parsed
func (h *FirrtlHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	circuit, _ := h.Circuit(params.TextDocument.URI)
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(circuit),
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *FirrtlHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Debugf("TextDocumentSemanticTokensFull called for: %s", params.TextDocument.URI)

	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.text)),
	}, nil
}

// Circuit returns the last successfully parsed circuit for uri. A document
// that stops parsing keeps its previous circuit until it is closed.
func (h *FirrtlHandler) Circuit(uri protocol.DocumentUri) (*ast.Circuit, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	if !ok || doc.circuit == nil {
		return nil, false
	}
	return doc.circuit, true
}

// getOrLoad returns the open document, reading it from disk when the
// client asks about a file it never opened.
func (h *FirrtlHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	doc, err = h.update(uri, string(content))
	if err != nil {
		return nil, err
	}
	sendDiagnosticNotification(ctx, uri, doc.diagnostics)
	return doc, nil
}

func (h *FirrtlHandler) update(uri protocol.DocumentUri, text string) (*document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	doc := &document{text: text, diagnostics: []protocol.Diagnostic{}}
	circuit, err := grammar.ParseCircuit(path, text)
	if err != nil {
		doc.diagnostics = Diagnose(err)
	} else {
		doc.circuit = circuit
		doc.diagnostics = Lint(text, circuit)
	}

	h.mu.Lock()
	if prev, ok := h.docs[uri]; ok && doc.circuit == nil {
		doc.circuit = prev.circuit
	}
	h.docs[uri] = doc
	h.mu.Unlock()

	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...)
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	log.Debugf("Sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
