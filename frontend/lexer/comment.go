package lexer

import (
	"strings"

	"github.com/anpylar/anpylar/common"
)

// TokComment represents a comment token. Text includes the leading '#'.
type TokComment struct {
	Text string
	span common.Span
}

func (t TokComment) isToken() {}

func (t TokComment) Span() common.Span {
	return t.span
}

func (t TokComment) String() string {
	return t.Text
}

func (t TokComment) Is(_ string) bool {
	return false
}

func (t TokComment) AsString() string {
	return ""
}

/* Lexing */

func (lx *lexer) comment() TokComment {
	var sb strings.Builder

	// read until newline or EOF
	for c := lx.curChr; c != nil && *c != '\n'; c = lx.curChr {
		sb.WriteRune(*c)
		lx.advance()
	}

	return TokComment{
		Text: strings.TrimRight(sb.String(), " \t\f"),
		span: lx.currentSpan(),
	}
}
