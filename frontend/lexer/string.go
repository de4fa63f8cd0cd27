package lexer

import (
	"strings"

	"github.com/anpylar/anpylar/common"
)

// TokString represents a string literal. Raw is the literal as written,
// prefix and quotes included.
type TokString struct {
	Raw    string
	Prefix string
	Triple bool
	span   common.Span
}

func (t TokString) isToken() {}

func (t TokString) Span() common.Span {
	return t.span
}

func (t TokString) String() string {
	return t.Raw
}

func (t TokString) Is(_ string) bool {
	return false
}

func (t TokString) AsString() string {
	return ""
}

func IsString(t Token) bool {
	_, ok := t.(TokString)
	return ok
}

/* Lexing */

var stringPrefixes = map[string]struct{}{
	"r": {}, "u": {}, "b": {}, "f": {}, "t": {},
	"br": {}, "rb": {}, "fr": {}, "rf": {}, "tr": {}, "rt": {},
}

func isQuote(r *rune) bool {
	return r != nil && (*r == '\'' || *r == '"')
}

// stringPrefixLen returns how many runes of prefix precede an opening quote
// at the current position, or -1 if no string starts here.
func (lx *lexer) stringPrefixLen() int {
	c := lx.curChr
	if isQuote(c) {
		return 0
	}
	prefix := strings.ToLower(string(*c))
	for n := 0; n < 2; n++ {
		if _, ok := stringPrefixes[prefix]; !ok {
			return -1
		}
		next := lx.peekAt(n)
		if isQuote(next) {
			return n + 1
		}
		if next == nil {
			return -1
		}
		prefix += strings.ToLower(string(*next))
	}
	return -1
}

// string scans a possibly prefixed, possibly triple-quoted string literal.
// Escapes are kept verbatim: only the extent of the literal matters here.
func (lx *lexer) string() (Token, *diagnostic) {
	n := lx.stringPrefixLen()
	if n < 0 {
		return nil, nil
	}

	var sb strings.Builder
	for range n {
		sb.WriteRune(*lx.curChr)
		lx.advance()
	}
	prefix := sb.String()

	quote := *lx.curChr
	sb.WriteRune(quote)
	lx.advance()

	triple := false
	if isChr(lx.curChr, quote) && isChr(lx.peek(), quote) {
		triple = true
		sb.WriteRune(quote)
		sb.WriteRune(quote)
		lx.advance()
		lx.advance()
	}

	for {
		c := lx.curChr
		if c == nil {
			if triple {
				return nil, lx.error("unterminated triple-quoted string literal")
			}
			return nil, lx.error("unterminated string literal")
		}

		switch {
		case *c == '\\':
			sb.WriteRune(*c)
			lx.advance()
			if lx.curChr == nil {
				continue // reported as unterminated above
			}
			sb.WriteRune(*lx.curChr)
			lx.advance()
			continue
		case *c == '\n' && !triple:
			return nil, lx.error("unterminated string literal")
		case *c == quote:
			if !triple {
				sb.WriteRune(quote)
				lx.advance()
				return TokString{Raw: sb.String(), Prefix: prefix, span: lx.currentSpan()}, nil
			}
			if isChr(lx.peek(), quote) && isChr(lx.peekAt(1), quote) {
				for range 3 {
					sb.WriteRune(quote)
					lx.advance()
				}
				return TokString{Raw: sb.String(), Prefix: prefix, Triple: true, span: lx.currentSpan()}, nil
			}
		}

		sb.WriteRune(*c)
		lx.advance()
	}
}

// IsStringPrefix reports whether s, written directly before a quote, would
// lex as a string prefix.
func IsStringPrefix(s string) bool {
	_, ok := stringPrefixes[strings.ToLower(s)]
	return ok
}
