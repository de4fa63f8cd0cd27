package lsp

import (
	"github.com/gluax-lang/lsp"
)

// References lists the import statements of open files that import the
// module of the current file.
func (h *Handler) References(p *lsp.ReferenceParams) ([]lsp.Location, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a, ok := h.analysisOf(p.TextDocument.URI)
	if !ok || a.module.Name == "" {
		return nil, nil
	}

	var locations []lsp.Location
	if p.Context.IncludeDeclaration {
		locations = append(locations, lsp.Location{URI: p.TextDocument.URI})
	}
	for _, path := range h.openFiles() {
		other := analyze(path, h.fileCache[path])
		for _, stmt := range other.importsOf(a.module.Name) {
			locations = append(locations, stmt.Span.ToLocation())
		}
	}
	return locations, nil
}
