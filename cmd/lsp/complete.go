package lsp

import (
	"strings"

	"github.com/gluax-lang/lsp"
)

// Complete offers module names on lines starting an import statement.
func (h *Handler) Complete(p *lsp.CompletionParams) (*lsp.CompletionList, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	path, err := uriToFilePath(p.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := h.fileCache[path]
	if !ok {
		return nil, nil
	}
	prefix, ok := importPrefix(lineBefore(text, p.Position))
	if !ok {
		return nil, nil
	}

	var list []lsp.CompletionItem
	lib := h.library()
	for _, name := range lib.names {
		leaf, ok := strings.CutPrefix(name, prefix)
		if !ok || strings.Contains(leaf, ".") {
			continue
		}
		list = append(list, lsp.CompletionItem{
			Label:  leaf,
			Kind:   lsp.CompletionItemKindModule,
			Detail: name + " (" + lib.origin(name).String() + ")",
		})
	}
	return &lsp.CompletionList{
		IsIncomplete: false,
		Items:        list,
	}, nil
}

// importPrefix returns the dotted name typed so far after "import" or
// "from" at the start of line.
func importPrefix(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || (fields[0] != "import" && fields[0] != "from") {
		return "", false
	}
	switch {
	case len(fields) == 1 && strings.HasSuffix(line, " "):
		return "", true
	case len(fields) == 2 && !strings.HasSuffix(line, " "):
		name := fields[1]
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			return name[:i+1], !strings.HasPrefix(name, ".")
		}
		return "", true
	}
	return "", false
}

// lineBefore returns the text of pos's line up to pos. Characters count
// runes.
func lineBefore(text string, pos lsp.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := []rune(lines[pos.Line])
	if int(pos.Character) < len(line) {
		line = line[:pos.Character]
	}
	return string(line)
}
