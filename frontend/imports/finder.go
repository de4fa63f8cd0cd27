// Package imports finds the modules a Python source imports and the
// modules transitively reachable from them inside a library manifest.
package imports

import (
	"maps"
	"slices"
	"strings"

	"github.com/anpylar/anpylar/frontend/lexer"
)

// Finder accumulates the names imported by the sources it visits. Every
// dotted prefix of an imported name is recorded: "import a.b.c" yields a,
// a.b and a.b.c.
type Finder struct {
	pkg  []string
	imps map[string]struct{}
}

func NewFinder() *Finder {
	return &Finder{imps: make(map[string]struct{})}
}

// SetPackage sets the package relative imports resolve against. An empty
// name clears it, and relative imports are then skipped.
func (f *Finder) SetPackage(pkg string) {
	if pkg == "" {
		f.pkg = nil
		return
	}
	f.pkg = strings.Split(pkg, ".")
}

// Scan tokenizes src and visits its import statements.
func (f *Finder) Scan(file, src string) error {
	tokens, err := lexer.Tokenize(file, src)
	if err != nil {
		return err
	}
	f.Visit(tokens)
	return nil
}

// Visit records the import statements found in tokens.
func (f *Finder) Visit(tokens []lexer.Token) {
	for _, stmt := range statements(tokens) {
		switch {
		case lexer.IsKeyword(stmt[0], "import"):
			f.visitImport(&cursor{toks: stmt[1:]})
		case lexer.IsKeyword(stmt[0], "from"):
			f.visitImportFrom(&cursor{toks: stmt[1:]})
		}
	}
}

// Set returns the recorded names. The map is owned by the finder.
func (f *Finder) Set() map[string]struct{} {
	return f.imps
}

// Imports returns the recorded names, sorted.
func (f *Finder) Imports() []string {
	return slices.Sorted(maps.Keys(f.imps))
}

func (f *Finder) add(parts []string) {
	for i := range parts {
		f.imps[strings.Join(parts[:i+1], ".")] = struct{}{}
	}
}

// import a.b [as x], c
func (f *Finder) visitImport(c *cursor) {
	for {
		name := c.dottedName()
		if name == nil {
			return
		}
		f.add(name)
		c.alias()
		if !c.punct(",") {
			return
		}
	}
}

// from [.]*[mod] import (* | names | (names))
func (f *Finder) visitImportFrom(c *cursor) {
	level := 0
	for {
		switch {
		case c.punct("."):
			level++
			continue
		case c.punct("..."):
			level += 3
			continue
		}
		break
	}
	module := c.dottedName()
	if !c.keyword("import") || (level == 0 && module == nil) {
		return
	}

	var base []string
	if level > 0 {
		if f.pkg == nil {
			return
		}
		n := len(f.pkg) - (level - 1)
		if n <= 0 {
			return // beyond the top level package
		}
		base = slices.Clone(f.pkg[:n])
	}
	base = append(base, module...)

	if c.punct("*") {
		f.add(base)
		return
	}

	paren := c.punct("(")
	for {
		name, ok := c.ident()
		if !ok {
			return
		}
		f.add(append(slices.Clone(base), name))
		c.alias()
		if !c.punct(",") {
			return
		}
		if paren && c.punct(")") {
			return // trailing comma
		}
	}
}

// statements splits tokens into simple statements: at logical line ends and
// at ';' or ':' outside brackets. Layout and comment tokens are dropped.
func statements(tokens []lexer.Token) [][]lexer.Token {
	var (
		stmts [][]lexer.Token
		cur   []lexer.Token
		depth int
	)
	flush := func() {
		if len(cur) > 0 {
			stmts = append(stmts, cur)
			cur = nil
		}
	}
	for _, tok := range tokens {
		if lexer.IsLogicalNewline(tok) {
			flush()
			continue
		}
		if !lexer.IsSignificant(tok) {
			continue
		}
		if p, ok := tok.(lexer.TokPunct); ok {
			switch p.Punct {
			case lexer.PunctOpenParen, lexer.PunctOpenBracket, lexer.PunctOpenBrace:
				depth++
			case lexer.PunctCloseParen, lexer.PunctCloseBracket, lexer.PunctCloseBrace:
				depth--
			case lexer.PunctSemicolon, lexer.PunctColon:
				if depth == 0 {
					flush()
					continue
				}
			}
		}
		cur = append(cur, tok)
	}
	flush()
	return stmts
}

type cursor struct {
	toks []lexer.Token
	pos  int
}

func (c *cursor) peek() lexer.Token {
	if c.pos >= len(c.toks) {
		return nil
	}
	return c.toks[c.pos]
}

func (c *cursor) punct(s string) bool {
	if t := c.peek(); t != nil && lexer.IsPunct(t, s) {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) keyword(s string) bool {
	if t := c.peek(); t != nil && lexer.IsKeyword(t, s) {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) ident() (string, bool) {
	if t, ok := c.peek().(lexer.TokIdent); ok {
		c.pos++
		return t.Raw, true
	}
	return "", false
}

func (c *cursor) dottedName() []string {
	first, ok := c.ident()
	if !ok {
		return nil
	}
	parts := []string{first}
	for c.punct(".") {
		next, ok := c.ident()
		if !ok {
			break
		}
		parts = append(parts, next)
	}
	return parts
}

// alias skips an optional "as name".
func (c *cursor) alias() {
	if c.keyword("as") {
		c.ident()
	}
}
