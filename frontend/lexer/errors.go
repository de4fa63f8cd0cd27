package lexer

import (
	"errors"
	"fmt"

	"github.com/anpylar/anpylar/common"
)

var ErrUnknownEncoding = errors.New("unknown source encoding")

// SyntaxError reports a tokenization failure in a source file.
type SyntaxError struct {
	File string
	Diag *diagnostic
}

func (e *SyntaxError) Error() string {
	line, col := common.DiagPosition(e.Diag)
	return fmt.Sprintf("%s:%d:%d: %s", e.File, line, col, e.Diag.Message)
}

// Tokenize is Lex with the diagnostic wrapped as an error.
func Tokenize(file, code string) ([]Token, error) {
	tokens, diag := Lex(file, code)
	if diag != nil {
		return nil, &SyntaxError{File: file, Diag: diag}
	}
	return tokens, nil
}

// Check reports whether code tokenizes cleanly.
func Check(file, code string) error {
	_, err := Tokenize(file, code)
	return err
}
