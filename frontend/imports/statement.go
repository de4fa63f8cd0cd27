package imports

import (
	"slices"
	"strings"

	"github.com/anpylar/anpylar/common"
	"github.com/anpylar/anpylar/frontend/lexer"
)

// Statement is one import statement of a source.
type Statement struct {
	Span common.Span
	// Relative is set for from imports with leading dots.
	Relative bool
	// Modules are the deepest names the statement imports, resolved
	// against the package the statement was read in.
	Modules []string
}

// Statements returns the import statements in tokens, resolving relative
// imports against pkg.
func Statements(tokens []lexer.Token, pkg string) []Statement {
	var out []Statement
	for _, stmt := range statements(tokens) {
		from := lexer.IsKeyword(stmt[0], "from")
		if !from && !lexer.IsKeyword(stmt[0], "import") {
			continue
		}
		f := NewFinder()
		f.SetPackage(pkg)
		f.Visit(stmt)
		out = append(out, Statement{
			Span:     common.SpanFrom(stmt[0].Span(), stmt[len(stmt)-1].Span()),
			Relative: from && len(stmt) > 1 && (lexer.IsPunct(stmt[1], ".") || lexer.IsPunct(stmt[1], "...")),
			Modules:  leaves(f.Imports()),
		})
	}
	return out
}

// leaves drops the names that are a dotted prefix of another one.
func leaves(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.ContainsFunc(names, func(other string) bool {
			return strings.HasPrefix(other, name+".")
		}) {
			out = append(out, name)
		}
	}
	return out
}
