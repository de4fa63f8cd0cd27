// Package peekable provides a peekable iterator over a string
package peekable

const bom = '\uFEFF'

// Chars is a peekable iterator over a string.
// It normalises line endings: "\r\n" and a lone '\r' both read as '\n'.
// A leading byte order mark is dropped.
type Chars struct {
	runes []rune
	pos   int
}

// NewPeekableChars creates a new PeekableChars iterator.
func NewPeekableChars(s string) *Chars {
	runes := make([]rune, 0, len(s))
	for i, r := range s {
		if i == 0 && r == bom {
			continue
		}
		if r == '\r' {
			if i+1 < len(s) && s[i+1] == '\n' {
				continue // the '\n' follows
			}
			r = '\n'
		}
		runes = append(runes, r)
	}
	return &Chars{runes: runes}
}

// Peek returns a copy of the next rune without consuming it.
// It returns nil if there is no next rune.
func (p *Chars) Peek() *rune {
	return p.PeekAt(0)
}

// PeekAt returns the rune n positions after the next one without consuming
// anything. PeekAt(0) is Peek().
func (p *Chars) PeekAt(n int) *rune {
	i := p.pos + n
	if i >= len(p.runes) {
		return nil
	}
	r := p.runes[i]
	return &r
}

// Next consumes and returns a copy of the next rune.
// It returns nil if there is no next rune.
func (p *Chars) Next() *rune {
	if p.pos >= len(p.runes) {
		return nil
	}
	r := p.runes[p.pos]
	p.pos++
	return &r
}

// Pos is the number of runes consumed so far.
func (p *Chars) Pos() int {
	return p.pos
}
