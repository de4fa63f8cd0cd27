package lexer

import (
	"strings"
	"unicode"

	"github.com/anpylar/anpylar/common"
)

type TokIdent struct {
	Raw  string
	span common.Span
}

func (t TokIdent) isToken() {}

func (t TokIdent) Span() common.Span {
	return t.span
}

func (t TokIdent) String() string {
	return t.Raw
}

func (t TokIdent) Is(_ string) bool {
	return false
}

func (t TokIdent) AsString() string {
	return ""
}

func NewTokIdent(s string, span common.Span) TokIdent {
	return TokIdent{Raw: s, span: span}
}

func IsIdentStr(t Token, s string) bool {
	if ident, ok := t.(TokIdent); ok {
		return ident.Raw == s
	}
	return false
}

/* Lexing */

func (lx *lexer) identifier() TokIdent {
	var sb strings.Builder

	sb.WriteRune(*lx.curChr)
	lx.advance()

	for c := lx.curChr; c != nil && isIdentContinue(*c); c = lx.curChr {
		sb.WriteRune(*c)
		lx.advance()
	}

	return NewTokIdent(sb.String(), lx.currentSpan())
}

func isIdentStart(r rune) bool {
	if ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') || r == '_' {
		return true
	}
	if r < 0x80 {
		return false
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIdentContinue(r rune) bool {
	if '0' <= r && r <= '9' {
		return true
	}
	if isIdentStart(r) {
		return true
	}
	if r < 0x80 {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// IsValidIdent reports whether s is a valid identifier that is not a
// keyword, i.e. whether a module named s can be imported.
func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := lookupKeyword(s); ok {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
		} else {
			if !isIdentContinue(r) {
				return false
			}
		}
	}
	return true
}
