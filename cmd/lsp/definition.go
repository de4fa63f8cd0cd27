package lsp

import (
	file_path "github.com/anpylar/anpylar/filepath"
	"github.com/gluax-lang/lsp"
)

func (h *Handler) Definition(p *lsp.DefinitionParams) ([]lsp.Location, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a, ok := h.analysisOf(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	stmt := a.statementAt(p.Position)
	if stmt == nil {
		return nil, nil
	}

	var locations []lsp.Location
	for _, mod := range stmt.Modules {
		if path, ok := h.resolve(a, mod); ok {
			locations = append(locations, lsp.Location{URI: file_path.ToURI(path)})
		}
	}
	return locations, nil
}

// resolve looks a module up next to the file's top package first, then in
// the workspace.
func (h *Handler) resolve(a *analysis, name string) (string, bool) {
	return resolve(name, a.module.Root, h.workspace)
}
