// Package lsp serves lexical diagnostics and import navigation for the
// Python sources of an application.
package lsp

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	file_path "github.com/anpylar/anpylar/filepath"
	protocol "github.com/gluax-lang/lsp"
	"github.com/rs/zerolog"
)

func RunLSP(log zerolog.Logger) error {
	return NewHandler(log).Serve(context.Background())
}

type Handler struct {
	*protocol.Server
	fileCache map[string]string // by file path
	mu        sync.Mutex
	workspace string
	lib       *moduleLibrary
	log       zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	h := &Handler{
		fileCache: make(map[string]string),
		log:       log,
	}
	h.Server = protocol.NewServer(os.Stdin, os.Stdout, h)
	return h
}

func (h *Handler) Initialize(p *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if p.WorkspaceFolders == nil || len(*p.WorkspaceFolders) == 0 {
		return nil, fmt.Errorf("no workspace folder detected")
	}
	workspaceFolders := *p.WorkspaceFolders
	root, err := uriToFilePath(workspaceFolders[0].URI)
	if err != nil {
		h.log.Error().Err(err).Msg("invalid workspace folder")
		return nil, err
	}
	h.log.Info().Str("root", root).Msg("workspace")
	h.workspace = root
	return &protocol.InitializeResult{Capabilities: protocol.ServerCapabilities{
		HoverProvider: protocol.NewHoverProviderBool(true),
		TextDocumentSync: protocol.NewTextDocumentSyncOptions(protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save: &protocol.SaveOptions{
				IncludeText: true,
			},
		}),
		InlayHintProvider: protocol.NewInlayHintProviderOptions(protocol.InlayHintOptions{
			ResolveProvider: false,
			WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{
				WorkDoneProgress: false,
			},
		}),
		DefinitionProvider: true,
	}}, nil
}

func (h *Handler) Initialized() error {
	h.log.Debug().Msg("initialized")
	return nil
}

func (h *Handler) handleDiagnostics(path string) {
	a := analyze(path, h.fileCache[path])
	h.log.Debug().Str("file", path).Int("diagnostics", len(a.diags)).Msg("analyzed")
	h.PublishDiagnostics(file_path.ToURI(path), a.diags)
}

// analysisOf analyzes the open file behind uri.
func (h *Handler) analysisOf(uri string) (*analysis, bool) {
	path, err := uriToFilePath(uri)
	if err != nil {
		return nil, false
	}
	text, ok := h.fileCache[path]
	if !ok {
		return nil, false
	}
	return analyze(path, text), true
}

func (h *Handler) openFiles() []string {
	return slices.Sorted(maps.Keys(h.fileCache))
}

func uriToFilePath(uri string) (string, error) {
	return file_path.FromURI(uri)
}
