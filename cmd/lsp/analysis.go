package lsp

import (
	"github.com/anpylar/anpylar/common"
	"github.com/anpylar/anpylar/frontend/imports"
	"github.com/anpylar/anpylar/frontend/lexer"
	protocol "github.com/gluax-lang/lsp"
)

type analysis struct {
	module module
	stmts  []imports.Statement
	diags  []protocol.Diagnostic
}

func analyze(path, text string) *analysis {
	a := &analysis{
		module: moduleOf(path),
		diags:  []protocol.Diagnostic{},
	}
	tokens, diag := lexer.Lex(path, text)
	if diag != nil {
		a.diags = append(a.diags, *diag)
		return a
	}
	a.stmts = imports.Statements(tokens, a.module.Package)
	for _, stmt := range a.stmts {
		if stmt.Relative && len(stmt.Modules) == 0 {
			msg := "relative import outside of a package"
			if a.module.Package != "" {
				msg = "relative import beyond top-level package"
			}
			a.diags = append(a.diags, *common.WarningDiag(msg, stmt.Span))
		}
	}
	return a
}

// statementAt returns the import statement covering pos.
func (a *analysis) statementAt(pos protocol.Position) *imports.Statement {
	for i := range a.stmts {
		if a.stmts[i].Span.ToRange().Contains(pos) {
			return &a.stmts[i]
		}
	}
	return nil
}

// importsOf returns the statements importing name or one of its
// submodules.
func (a *analysis) importsOf(name string) []imports.Statement {
	var out []imports.Statement
	for _, stmt := range a.stmts {
		for _, mod := range stmt.Modules {
			if imports.Ignored(mod, []string{name}) {
				out = append(out, stmt)
				break
			}
		}
	}
	return out
}
