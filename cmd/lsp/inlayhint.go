package lsp

import (
	"strings"

	"github.com/gluax-lang/lsp"
)

// InlayHint shows the absolute names relative imports resolve to.
func (h *Handler) InlayHint(p *lsp.InlayHintParams) ([]lsp.InlayHint, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a, ok := h.analysisOf(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	var hints []lsp.InlayHint
	kind := lsp.InlayHintKindType
	for _, stmt := range a.stmts {
		if !stmt.Relative || len(stmt.Modules) == 0 {
			continue
		}
		hints = append(hints, lsp.InlayHint{
			Position: stmt.Span.ToRange().End,
			Label: []lsp.InlayHintLabelPart{
				{Value: " -> " + strings.Join(stmt.Modules, ", ")},
			},
			Kind: &kind,
		})
	}
	return hints, nil
}
