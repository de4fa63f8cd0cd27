package lexer

import "github.com/anpylar/anpylar/common"

type TokEOF struct {
	span common.Span
}

func (t TokEOF) isToken() {}

func (t TokEOF) Span() common.Span {
	return t.span
}

func (t TokEOF) String() string {
	return ""
}

func (t TokEOF) Is(_ string) bool {
	return false
}

func (t TokEOF) AsString() string {
	return ""
}

// TokNewline ends a physical line. Logical is set when it also ends a
// logical line (NEWLINE as opposed to NL).
type TokNewline struct {
	Logical bool
	span    common.Span
}

func (t TokNewline) isToken() {}

func (t TokNewline) Span() common.Span {
	return t.span
}

func (t TokNewline) String() string {
	return "\n"
}

func (t TokNewline) Is(_ string) bool {
	return false
}

func (t TokNewline) AsString() string {
	return ""
}

type TokIndent struct {
	span common.Span
}

func (t TokIndent) isToken() {}

func (t TokIndent) Span() common.Span {
	return t.span
}

func (t TokIndent) String() string {
	return ""
}

func (t TokIndent) Is(_ string) bool {
	return false
}

func (t TokIndent) AsString() string {
	return ""
}

type TokDedent struct {
	span common.Span
}

func (t TokDedent) isToken() {}

func (t TokDedent) Span() common.Span {
	return t.span
}

func (t TokDedent) String() string {
	return ""
}

func (t TokDedent) Is(_ string) bool {
	return false
}

func (t TokDedent) AsString() string {
	return ""
}

func IsEOF(t Token) bool {
	_, ok := t.(TokEOF)
	return ok
}

func IsIdent(t Token) bool {
	_, ok := t.(TokIdent)
	return ok
}

// IsLogicalNewline reports whether t ends a logical line.
func IsLogicalNewline(t Token) bool {
	nl, ok := t.(TokNewline)
	return ok && nl.Logical
}
