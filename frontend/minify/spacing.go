package minify

import (
	"strings"

	"github.com/anpylar/anpylar/frontend/lexer"
)

func isWordy(t lexer.Token) bool {
	switch t.(type) {
	case lexer.TokIdent, lexer.TokKeyword, lexer.TokNumber:
		return true
	}
	return false
}

func isName(t lexer.Token) bool {
	switch t.(type) {
	case lexer.TokIdent, lexer.TokKeyword:
		return true
	}
	return false
}

// needsSpace reports whether prev and next would lex differently when
// written back to back.
func needsSpace(prev, next lexer.Token) bool {
	if isWordy(prev) && isWordy(next) {
		return true
	}

	switch next := next.(type) {
	case lexer.TokString:
		if lexer.IsString(prev) {
			return true
		}
		if isName(prev) {
			return next.Prefix != "" || lexer.IsStringPrefix(prev.String())
		}
	case lexer.TokPunct:
		if _, ok := prev.(lexer.TokNumber); ok && strings.HasPrefix(next.String(), ".") {
			return true
		}
		if p, ok := prev.(lexer.TokPunct); ok {
			return lexer.IsOperatorPrefix(p.String() + next.String())
		}
	case lexer.TokKeyword:
		if lexer.IsPunct(prev, ".") || lexer.IsPunct(prev, "...") {
			return true
		}
	}
	return false
}
