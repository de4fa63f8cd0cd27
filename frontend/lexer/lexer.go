package lexer

import (
	"fmt"

	"github.com/anpylar/anpylar/common"
	"github.com/anpylar/anpylar/frontend/lexer/peekable"
	protocol "github.com/gluax-lang/lsp"
)

type diagnostic = protocol.Diagnostic

const tabSize = 8

// lexer is a hand-rolled, rune-based scanner for Python source.
type lexer struct {
	src                    string // source is the file being scanned
	chars                  *peekable.Chars
	curChr                 *rune
	line, column           uint32
	savedLine, savedColumn uint32

	tokens   []Token
	brackets common.Stack[TokPunct]
	indents  []int

	// atLineStart is set when the next rune begins a physical line whose
	// indentation is significant.
	atLineStart bool
	// lineHasTokens is set once the current logical line carries a
	// significant token.
	lineHasTokens bool
}

// Lex scans code into tokens. src names the file for diagnostics.
func Lex(src, code string) ([]Token, *diagnostic) {
	lx := newLexer(src, code)
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.tokens, nil
}

// newLexer returns a fresh lexer initialised with src.
func newLexer(src, code string) *lexer {
	chars := peekable.NewPeekableChars(code)
	lx := &lexer{
		src:    src,
		chars:  chars,
		curChr: chars.Next(),
		line:   1, column: 1,
		savedLine: 1, savedColumn: 1,
		indents:     []int{0},
		atLineStart: true,
	}
	return lx
}

func (lx *lexer) currentSpan() common.Span {
	span := common.SpanNew(lx.savedLine, lx.line, lx.savedColumn, lx.column)
	span.Source = lx.src
	return span
}

func (lx *lexer) pointSpan() common.Span {
	span := common.SpanNew(lx.line, lx.line, lx.column, lx.column)
	span.Source = lx.src
	return span
}

func (lx *lexer) mark() {
	lx.savedLine = lx.line
	lx.savedColumn = lx.column
}

func (lx *lexer) advance() {
	c := lx.curChr
	if c != nil {
		if *c == '\n' {
			lx.line++
			lx.column = 1
		} else {
			lx.column++
		}
	}
	lx.curChr = lx.chars.Next()
}

func (lx *lexer) peek() *rune {
	return lx.chars.Peek()
}

func (lx *lexer) peekAt(n int) *rune {
	return lx.chars.PeekAt(n)
}

func (lx *lexer) error(msg string) *diagnostic {
	span := common.SpanNew(lx.savedLine, lx.line, lx.savedColumn, common.MaxUint32(lx.column, 1))
	span.Source = lx.src
	return common.ErrorDiag(msg, span)
}

func (lx *lexer) emit(t Token) {
	lx.tokens = append(lx.tokens, t)
}

func (lx *lexer) run() *diagnostic {
	for {
		if lx.atLineStart {
			if err := lx.indentation(); err != nil {
				return err
			}
		}

		lx.skipWs()
		c := lx.curChr
		if c == nil {
			return lx.finish()
		}

		switch {
		case *c == '\n':
			lx.newline()
			continue
		case *c == '#':
			lx.emit(lx.comment())
			continue
		case *c == '\\':
			if err := lx.continuation(); err != nil {
				return err
			}
			continue
		}

		tok, err := lx.nextToken()
		if err != nil {
			return err
		}
		lx.lineHasTokens = true
		lx.emit(tok)
	}
}

func (lx *lexer) nextToken() (Token, *diagnostic) {
	c := lx.curChr

	// String, possibly prefixed
	if token, err := lx.string(); err != nil {
		return nil, err
	} else if token != nil {
		return token, nil
	}

	// Number
	if token, err := lx.number(); err != nil {
		return nil, err
	} else if token != nil {
		return token, nil
	}

	// Punctuation
	if token, err := lx.punct(); err != nil {
		return nil, err
	} else if token != nil {
		return token, nil
	}

	if !isIdentStart(*c) {
		return nil, lx.error(fmt.Sprintf("invalid character '%c' (U+%04X)", *c, *c))
	}

	identTok := lx.identifier()

	// Keyword
	if keyword, ok := lookupKeyword(identTok.Raw); ok {
		return newTokKeyword(keyword, identTok.Span()), nil
	}

	return identTok, nil
}

// indentation measures the indentation of a physical line and emits INDENT
// or DEDENT tokens. Blank and comment-only lines leave the stack untouched.
func (lx *lexer) indentation() *diagnostic {
	lx.atLineStart = false
	col := 0
	for c := lx.curChr; c != nil; c = lx.curChr {
		switch *c {
		case ' ':
			col++
		case '\t':
			col = (col/tabSize + 1) * tabSize
		case '\f':
			col = 0
		default:
			goto measured
		}
		lx.advance()
	}
measured:
	c := lx.curChr
	if c == nil || *c == '\n' || *c == '#' {
		return nil
	}

	lx.mark()
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.emit(TokIndent{span: lx.pointSpan()})
	case col < top:
		for col < lx.indents[len(lx.indents)-1] {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.emit(TokDedent{span: lx.pointSpan()})
		}
		if col != lx.indents[len(lx.indents)-1] {
			return lx.error("unindent does not match any outer indentation level")
		}
	}
	return nil
}

func (lx *lexer) newline() {
	lx.mark()
	logical := lx.lineHasTokens && lx.brackets.Empty()
	lx.advance()
	lx.emit(TokNewline{Logical: logical, span: lx.currentSpan()})
	if lx.brackets.Empty() {
		lx.atLineStart = true
		lx.lineHasTokens = false
	}
}

func (lx *lexer) continuation() *diagnostic {
	lx.mark()
	lx.advance() // skip '\'
	if lx.curChr == nil {
		return lx.error("unexpected EOF while parsing")
	}
	if *lx.curChr != '\n' {
		return lx.error("unexpected character after line continuation character")
	}
	lx.advance() // the next physical line belongs to the same logical line
	return nil
}

func (lx *lexer) finish() *diagnostic {
	if open, ok := lx.brackets.Peek(); ok {
		lx.savedLine, lx.savedColumn = open.span.LineStart, open.span.ColumnStart
		return lx.error(fmt.Sprintf("'%s' was never closed", open.String()))
	}
	lx.mark()
	if lx.lineHasTokens {
		lx.emit(TokNewline{Logical: true, span: lx.pointSpan()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(TokDedent{span: lx.pointSpan()})
	}
	lx.emit(TokEOF{span: lx.pointSpan()})
	return nil
}

// skipWs skips blanks up to the next token, newline or EOF.
func (lx *lexer) skipWs() {
	for isWsChr(lx.curChr) {
		lx.advance()
	}
	lx.mark()
}

func isChr(c *rune, e rune) bool {
	return c != nil && *c == e
}

func isWsChr(c *rune) bool {
	if c == nil {
		return false
	}
	switch *c {
	case ' ', '\t', '\f':
		return true
	default:
		return false
	}
}
