package lexer

import (
	"fmt"

	"github.com/anpylar/anpylar/common"
)

// Punct represents an operator or delimiter.
type Punct int

const (
	_ Punct = iota

	// PunctPlus is `+`
	PunctPlus
	// PunctMinus is `-`
	PunctMinus
	// PunctAsterisk is `*`
	PunctAsterisk
	// PunctExponent is `**`
	PunctExponent
	// PunctSlash is `/`
	PunctSlash
	// PunctFloorDiv is `//`
	PunctFloorDiv
	// PunctPercent is `%`
	PunctPercent
	// PunctAt is `@`
	PunctAt
	// PunctShl is `<<`
	PunctShl
	// PunctShr is `>>`
	PunctShr
	// PunctAmpersand is `&`
	PunctAmpersand
	// PunctPipe is `|`
	PunctPipe
	// PunctCaret is `^`
	PunctCaret
	// PunctTilde is `~`
	PunctTilde
	// PunctWalrus is `:=`
	PunctWalrus
	// PunctLessThan is `<`
	PunctLessThan
	// PunctGreaterThan is `>`
	PunctGreaterThan
	// PunctLessThanEqual is `<=`
	PunctLessThanEqual
	// PunctGreaterThanEqual is `>=`
	PunctGreaterThanEqual
	// PunctEqualEqual is `==`
	PunctEqualEqual
	// PunctNotEqual is `!=`
	PunctNotEqual
	// PunctOpenParen is `(`
	PunctOpenParen
	// PunctCloseParen is `)`
	PunctCloseParen
	// PunctOpenBracket is `[`
	PunctOpenBracket
	// PunctCloseBracket is `]`
	PunctCloseBracket
	// PunctOpenBrace is `{`
	PunctOpenBrace
	// PunctCloseBrace is `}`
	PunctCloseBrace
	// PunctComma is `,`
	PunctComma
	// PunctColon is `:`
	PunctColon
	// PunctDot is `.`
	PunctDot
	// PunctEllipsis is `...`
	PunctEllipsis
	// PunctSemicolon is `;`
	PunctSemicolon
	// PunctEqual is `=`
	PunctEqual
	// PunctArrow is `->`
	PunctArrow
	// PunctBang is `!`, only valid inside f-string replacement fields
	PunctBang

	PunctPlusEqual
	PunctMinusEqual
	PunctAsteriskEqual
	PunctSlashEqual
	PunctFloorDivEqual
	PunctPercentEqual
	PunctAtEqual
	PunctAmpersandEqual
	PunctPipeEqual
	PunctCaretEqual
	PunctShrEqual
	PunctShlEqual
	PunctExponentEqual
)

var puncts = map[string]Punct{
	"+":   PunctPlus,
	"-":   PunctMinus,
	"*":   PunctAsterisk,
	"**":  PunctExponent,
	"/":   PunctSlash,
	"//":  PunctFloorDiv,
	"%":   PunctPercent,
	"@":   PunctAt,
	"<<":  PunctShl,
	">>":  PunctShr,
	"&":   PunctAmpersand,
	"|":   PunctPipe,
	"^":   PunctCaret,
	"~":   PunctTilde,
	":=":  PunctWalrus,
	"<":   PunctLessThan,
	">":   PunctGreaterThan,
	"<=":  PunctLessThanEqual,
	">=":  PunctGreaterThanEqual,
	"==":  PunctEqualEqual,
	"!=":  PunctNotEqual,
	"(":   PunctOpenParen,
	")":   PunctCloseParen,
	"[":   PunctOpenBracket,
	"]":   PunctCloseBracket,
	"{":   PunctOpenBrace,
	"}":   PunctCloseBrace,
	",":   PunctComma,
	":":   PunctColon,
	".":   PunctDot,
	"...": PunctEllipsis,
	";":   PunctSemicolon,
	"=":   PunctEqual,
	"->":  PunctArrow,
	"!":   PunctBang,
	"+=":  PunctPlusEqual,
	"-=":  PunctMinusEqual,
	"*=":  PunctAsteriskEqual,
	"/=":  PunctSlashEqual,
	"//=": PunctFloorDivEqual,
	"%=":  PunctPercentEqual,
	"@=":  PunctAtEqual,
	"&=":  PunctAmpersandEqual,
	"|=":  PunctPipeEqual,
	"^=":  PunctCaretEqual,
	">>=": PunctShrEqual,
	"<<=": PunctShlEqual,
	"**=": PunctExponentEqual,
}

var punctNames = func() []string {
	// find the largest enum value so the slice is the right length
	var max Punct
	for _, p := range puncts {
		if p > max {
			max = p
		}
	}
	names := make([]string, max+1)
	for lit, p := range puncts {
		names[p] = lit
	}
	return names
}()

// punctPrefixes holds every proper prefix of an operator, so that two
// adjacent operators can be told apart from one longer operator.
var punctPrefixes = func() map[string]struct{} {
	prefixes := make(map[string]struct{})
	for lit := range puncts {
		for i := 1; i < len(lit); i++ {
			prefixes[lit[:i]] = struct{}{}
		}
	}
	return prefixes
}()

// IsOperatorPrefix reports whether s is an operator or the beginning of one.
func IsOperatorPrefix(s string) bool {
	if _, ok := puncts[s]; ok {
		return true
	}
	_, ok := punctPrefixes[s]
	return ok
}

type TokPunct struct {
	Punct Punct
	span  common.Span
}

func (t TokPunct) isToken() {}

func (t TokPunct) Span() common.Span {
	return t.span
}

func (t TokPunct) String() string {
	return punctNames[t.Punct]
}

func (t TokPunct) Is(other string) bool {
	p, ok := puncts[other]
	return ok && p == t.Punct
}

func (t TokPunct) AsString() string {
	return t.String()
}

func newTokPunct(p Punct, span common.Span) TokPunct {
	return TokPunct{Punct: p, span: span}
}

// IsPunct reports whether t is the operator or delimiter s.
func IsPunct(t Token, s string) bool {
	p, ok := t.(TokPunct)
	return ok && p.Is(s)
}

/* Lexing */

var closers = map[Punct]Punct{
	PunctOpenParen:   PunctCloseParen,
	PunctOpenBracket: PunctCloseBracket,
	PunctOpenBrace:   PunctCloseBrace,
}

func (lx *lexer) punct() (Token, *diagnostic) {
	c := lx.curChr
	// '.' followed by a digit starts a number, handled before we get here
	candidate := string(*c)
	for i := 0; i < 2; i++ {
		next := lx.peekAt(i)
		if next == nil {
			break
		}
		candidate += string(*next)
	}

	for n := len(candidate); n > 0; n-- {
		p, ok := puncts[candidate[:n]]
		if !ok {
			continue
		}
		for range n {
			lx.advance()
		}
		tok := newTokPunct(p, lx.currentSpan())
		if err := lx.balance(tok); err != nil {
			return nil, err
		}
		return tok, nil
	}
	return nil, nil
}

func (lx *lexer) balance(tok TokPunct) *diagnostic {
	switch tok.Punct {
	case PunctOpenParen, PunctOpenBracket, PunctOpenBrace:
		lx.brackets.Push(tok)
	case PunctCloseParen, PunctCloseBracket, PunctCloseBrace:
		open, ok := lx.brackets.Pop()
		if !ok {
			return lx.error(fmt.Sprintf("unmatched '%s'", tok.String()))
		}
		if closers[open.Punct] != tok.Punct {
			return lx.error(fmt.Sprintf("closing parenthesis '%s' does not match opening parenthesis '%s'", tok.String(), open.String()))
		}
	}
	return nil
}
