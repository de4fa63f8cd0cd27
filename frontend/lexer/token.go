package lexer

import (
	"github.com/anpylar/anpylar/common"
)

type Token interface {
	isToken()
	Span() common.Span
	// String returns the source text of the token.
	String() string
	Is(string) bool
	// AsString used for keywords and punctuations, to make it easier to switch on tokens for them
	AsString() string
}

// IsSignificant reports whether t carries source text, as opposed to layout
// tokens (newlines, indentation, comments and the end marker).
func IsSignificant(t Token) bool {
	switch t.(type) {
	case TokIdent, TokKeyword, TokNumber, TokString, TokPunct:
		return true
	}
	return false
}
