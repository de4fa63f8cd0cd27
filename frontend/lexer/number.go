package lexer

import "github.com/anpylar/anpylar/common"

type TokNumber struct {
	Raw  string
	span common.Span
}

func (t TokNumber) isToken() {}

func (t TokNumber) Span() common.Span {
	return t.span
}

func (t TokNumber) String() string {
	return t.Raw
}

func (t TokNumber) Is(_ string) bool {
	return false
}

func (t TokNumber) AsString() string {
	return ""
}

func newTokNumber(s string, span common.Span) TokNumber {
	return TokNumber{Raw: s, span: span}
}

/* Lexing */

// number scans integer, float and imaginary literals. It returns nil when
// the current rune does not start a number.
func (lx *lexer) number() (Token, *diagnostic) {
	c := lx.curChr
	startsWithDot := *c == '.' && isAsciiDigit(lx.peek())
	if !isAsciiDigit(c) && !startsWithDot {
		return nil, nil
	}

	var raw []rune
	take := func() {
		raw = append(raw, *lx.curChr)
		lx.advance()
	}
	digits := func(accept func(*rune) bool) {
		for accept(lx.curChr) || isChr(lx.curChr, '_') {
			take()
		}
	}

	if *c == '0' {
		if p := lx.peek(); p != nil {
			var accept func(*rune) bool
			switch *p {
			case 'x', 'X':
				accept = isHexDigit
			case 'o', 'O':
				accept = isOctDigit
			case 'b', 'B':
				accept = isBinDigit
			}
			if accept != nil {
				take() // '0'
				take() // base marker
				if !accept(lx.curChr) && !isChr(lx.curChr, '_') {
					return nil, lx.error("invalid number literal")
				}
				digits(accept)
				return newTokNumber(string(raw), lx.currentSpan()), nil
			}
		}
	}

	digits(isAsciiDigit)
	if isChr(lx.curChr, '.') {
		take()
		digits(isAsciiDigit)
	}
	if isChr(lx.curChr, 'e') || isChr(lx.curChr, 'E') {
		take()
		if isChr(lx.curChr, '+') || isChr(lx.curChr, '-') {
			take()
		}
		if !isAsciiDigit(lx.curChr) {
			return nil, lx.error("invalid decimal literal")
		}
		digits(isAsciiDigit)
	}
	if isChr(lx.curChr, 'j') || isChr(lx.curChr, 'J') {
		take()
	}

	return newTokNumber(string(raw), lx.currentSpan()), nil
}

func isAsciiDigit(r *rune) bool {
	return r != nil && '0' <= *r && *r <= '9'
}

func isOctDigit(r *rune) bool {
	return r != nil && '0' <= *r && *r <= '7'
}

func isBinDigit(r *rune) bool {
	return r != nil && (*r == '0' || *r == '1')
}

// isHexDigit checks if a rune is a hexadecimal digit.
func isHexDigit(r *rune) bool {
	if r == nil {
		return false
	}
	return ('0' <= *r && *r <= '9') || ('a' <= *r && *r <= 'f') || ('A' <= *r && *r <= 'F')
}
