// Package minify shrinks Python source without changing what it does.
//
// The source is tokenized, regrouped into logical lines and written back
// with one space per indentation level and only the spaces that keep
// adjacent tokens apart. Comments and blank lines are dropped, string
// expression statements (docstrings) become '' or disappear.
package minify

import (
	"strings"

	"github.com/anpylar/anpylar/frontend/lexer"
)

type options struct {
	keepHeaders bool
	file        string
}

type Option func(*options)

// KeepHeaders keeps a shebang on line 1 and a coding declaration on lines
// 1-2. Enabled by default.
func KeepHeaders(keep bool) Option {
	return func(o *options) {
		o.keepHeaders = keep
	}
}

// Filename names the source in syntax errors.
func Filename(name string) Option {
	return func(o *options) {
		o.file = name
	}
}

// line is one logical line of output.
type line struct {
	indent      int
	tokens      []lexer.Token
	header      string
	placeholder bool
}

func (l line) isHeader() bool {
	return l.header != ""
}

// Minify returns the minified form of src. Source that does not tokenize
// yields a *lexer.SyntaxError and no output.
func Minify(src string, opts ...Option) (string, error) {
	o := options{keepHeaders: true, file: "<string>"}
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := lexer.Tokenize(o.file, src)
	if err != nil {
		return "", err
	}

	lines := logicalLines(tokens, o.keepHeaders)
	lines = elidePlaceholders(lines)
	return render(lines), nil
}

func logicalLines(tokens []lexer.Token, keepHeaders bool) []line {
	var (
		lines    []line
		cur      line
		level    int
		seenCode bool
	)
	for _, tok := range tokens {
		switch tok := tok.(type) {
		case lexer.TokIndent:
			level++
		case lexer.TokDedent:
			level--
		case lexer.TokComment:
			if keepHeaders && !seenCode && isHeaderComment(tok) {
				lines = append(lines, line{header: tok.Text})
			}
		case lexer.TokNewline:
			if tok.Logical && len(cur.tokens) > 0 {
				cur.placeholder = isStringsOnly(cur.tokens)
				lines = append(lines, cur)
				cur = line{}
			}
		case lexer.TokEOF:
		default:
			if len(cur.tokens) == 0 {
				cur.indent = level
				seenCode = true
			}
			cur.tokens = append(cur.tokens, tok)
		}
	}
	return lines
}

func isHeaderComment(c lexer.TokComment) bool {
	span := c.Span()
	if span.ColumnStart != 1 {
		return false
	}
	if span.LineStart == 1 && strings.HasPrefix(c.Text, "#!") {
		return true
	}
	return span.LineStart <= 2 && lexer.IsCodingLine(c.Text)
}

// isStringsOnly reports whether a line holds nothing but plain string
// literals. f- and t-strings evaluate their fields and are never elided.
func isStringsOnly(tokens []lexer.Token) bool {
	for _, tok := range tokens {
		str, ok := tok.(lexer.TokString)
		if !ok || strings.ContainsAny(str.Prefix, "fFtT") {
			return false
		}
	}
	return true
}

// elidePlaceholders drops '' lines that open the module or are followed by
// a line at the same indentation, where they cannot be a block's only body.
func elidePlaceholders(lines []line) []line {
	kept := make([]line, 0, len(lines))
	codeKept := false
	for i, l := range lines {
		if l.placeholder {
			if !codeKept {
				continue
			}
			if i+1 < len(lines) && lines[i+1].indent == l.indent {
				continue
			}
		}
		if !l.isHeader() {
			codeKept = true
		}
		kept = append(kept, l)
	}
	return kept
}

func render(lines []line) string {
	var sb strings.Builder
	for _, l := range lines {
		switch {
		case l.isHeader():
			sb.WriteString(l.header)
		case l.placeholder:
			sb.WriteString(strings.Repeat(" ", l.indent))
			sb.WriteString("''")
		default:
			sb.WriteString(strings.Repeat(" ", l.indent))
			writeTokens(&sb, l.tokens)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeTokens(sb *strings.Builder, tokens []lexer.Token) {
	var prev lexer.Token
	for _, tok := range tokens {
		if prev != nil && needsSpace(prev, tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.String())
		prev = tok
	}
}
