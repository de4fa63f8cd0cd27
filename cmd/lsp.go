package main

import (
	"github.com/anpylar/anpylar/cmd/lsp"
	"github.com/rs/zerolog"
)

type LspCmd struct {
	Stdio bool `help:"(internal) LSP clients pass this flag. Safe to ignore." name:"stdio"`
}

func (l *LspCmd) Run(log zerolog.Logger) error {
	return lsp.RunLSP(log)
}
