package lsp

import (
	"fmt"
	"strings"

	"github.com/gluax-lang/lsp"
)

func (h *Handler) Hover(p *lsp.HoverParams) (*lsp.Hover, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	a, ok := h.analysisOf(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	stmt := a.statementAt(p.Position)
	if stmt == nil || len(stmt.Modules) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, mod := range stmt.Modules {
		fmt.Fprintf(&sb, "```python\nimport %s\n```\n%s\n\n", mod, h.describe(a, mod))
	}
	return &lsp.Hover{
		Contents: lsp.MarkupContent{
			Kind:  "markdown",
			Value: sb.String(),
		},
	}, nil
}

// describe tells where a module is found.
func (h *Handler) describe(a *analysis, name string) string {
	if path, ok := h.resolve(a, name); ok {
		return "`" + path + "`"
	}
	if o := h.library().origin(name); o != originUnknown {
		return o.String()
	}
	return "not found"
}
