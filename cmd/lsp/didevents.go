package lsp

import "github.com/gluax-lang/lsp"

func (h *Handler) DidOpen(p *lsp.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := uriToFilePath(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	h.fileCache[path] = p.TextDocument.Text
	h.handleDiagnostics(path)
	return nil
}

func (h *Handler) DidChange(p *lsp.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := uriToFilePath(p.TextDocument.URI)
	if err != nil || len(p.ContentChanges) == 0 {
		return nil
	}
	h.fileCache[path] = p.ContentChanges[len(p.ContentChanges)-1].Text
	h.handleDiagnostics(path)
	return nil
}

func (h *Handler) DidClose(p *lsp.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := uriToFilePath(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(h.fileCache, path)
	h.PublishDiagnostics(p.TextDocument.URI, []lsp.Diagnostic{})
	return nil
}

func (h *Handler) DidSave(p *lsp.DidSaveTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := uriToFilePath(p.TextDocument.URI)
	if err != nil || p.Text == nil {
		return nil
	}
	h.fileCache[path] = *p.Text
	h.handleDiagnostics(path)
	return nil
}
