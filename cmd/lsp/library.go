package lsp

import (
	"slices"

	"github.com/anpylar/anpylar/frontend/paket"
	"github.com/anpylar/anpylar/std"
)

type origin int

const (
	originUnknown origin = iota
	originStdlib
	originFramework
)

func (o origin) String() string {
	switch o {
	case originStdlib:
		return "standard library"
	case originFramework:
		return "framework"
	}
	return "unknown"
}

// moduleLibrary holds the modules every bundle can import.
type moduleLibrary struct {
	names   []string
	origins map[string]origin
}

func (l *moduleLibrary) origin(name string) origin {
	return l.origins[name]
}

// library packages the default library and the framework on first use.
// Failures leave the library empty.
func (h *Handler) library() *moduleLibrary {
	if h.lib != nil {
		return h.lib
	}
	h.lib = &moduleLibrary{origins: make(map[string]origin)}

	if m, err := std.StdlibManifest(); err != nil {
		h.log.Error().Err(err).Msg("packaging standard library")
	} else {
		for _, name := range m.Names() {
			h.lib.origins[name] = originStdlib
		}
	}
	p := paket.New(paket.Options{Extensions: []string{".py"}}, h.log)
	if m, err := std.Framework(p); err != nil {
		h.log.Error().Err(err).Msg("packaging framework")
	} else {
		for _, name := range m.Names() {
			h.lib.origins[name] = originFramework
		}
	}
	for name := range h.lib.origins {
		h.lib.names = append(h.lib.names, name)
	}
	slices.Sort(h.lib.names)
	return h.lib
}
