package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ssacore/internal/ir"
	"ssacore/internal/langfront"
	"ssacore/internal/verify"
)

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"variable",
	"parameter",
	"property",
	"keyword",
	"number",
	"operator",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
	"static",
	"deprecated",
	"abstract",
}

// document is the per-file state the handler keeps between requests: the
// last successfully parsed AST (for semantic tokens) and the functions it
// lowered to (for verification diagnostics).
type document struct {
	content string
	doc     *langfront.Document
	funcs   []*ir.Function
}

// Handler implements the LSP server handlers for the textual IR language.
type Handler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{
		docs: make(map[string]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false), // no additional detail resolution yet
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true), // support full-document semantic token requests
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities and completes initialization
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

// SetTrace handles the client's $/setTrace notification. Trace verbosity
// isn't wired to anything in this server yet, so this just acknowledges it.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateDocument(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if len(diagnostics) > 0 {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateDocument(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if len(diagnostics) > 0 {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}

	return nil
}

// TextDocumentCompletion handles completion requests (currently returns empty list)
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	log.Println("TextDocumentSemanticTokensFull called for:", params.TextDocument.URI)

	rawURI := params.TextDocument.URI

	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	doc, err := h.getOrUpdateDocument(ctx, path, rawURI)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return &protocol.SemanticTokens{}, nil
	}

	tokens := collectSemanticTokens(doc.doc)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

func (h *Handler) getOrUpdateDocument(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()

	if ok {
		return doc, nil
	}

	diagnostics, err := h.updateDocument(rawURI)
	if err != nil {
		return nil, err
	}
	if len(diagnostics) > 0 {
		sendDiagnosticNotification(ctx, rawURI, diagnostics)
	}

	h.mu.RLock()
	doc = h.docs[path]
	h.mu.RUnlock()

	return doc, nil
}

// updateDocument re-parses, lowers, and verifies a document, caching the
// result and returning the diagnostics to publish. Content is always
// (re)read from disk, matching the teacher's original open/change
// handling rather than trusting the notification's embedded text.
func (h *Handler) updateDocument(rawURI protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	content := string(raw)

	parsed, err := langfront.ParseSource(path, content)
	if err != nil {
		return ConvertParseError(err), nil
	}

	funcs, err := langfront.Lower(parsed)
	if err != nil {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("ssacore-lower"),
			Message:  err.Error(),
		}}, nil
	}

	var diagnostics []protocol.Diagnostic
	for _, f := range funcs {
		report := verify.Verify(f)
		diagnostics = append(diagnostics, ConvertVerifyReport(report)...)
	}

	h.mu.Lock()
	h.docs[path] = &document{content: content, doc: parsed, funcs: funcs}
	h.mu.Unlock()

	return diagnostics, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		fmt.Println("Failed to marshal diagnostics:", err)
		return
	}

	log.Println("Sending diagnostics:", string(diagnosticsJSON))

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
