package common

import (
	"fmt"

	file_path "github.com/anpylar/anpylar/filepath"
	protocol "github.com/gluax-lang/lsp"
)

// Span represents a range in a source file. Lines and columns are 1-based.
type Span struct {
	LineStart, LineEnd     uint32
	ColumnStart, ColumnEnd uint32
	Source                 string // empty == unknown
}

// ToRange converts the span to a zero-based LSP range.
func (s Span) ToRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      zeroBased(s.LineStart),
			Character: zeroBased(s.ColumnStart),
		},
		End: protocol.Position{
			Line:      zeroBased(s.LineEnd),
			Character: zeroBased(s.ColumnEnd),
		},
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d (%s)", s.LineStart, s.ColumnStart, s.LineEnd, s.ColumnEnd, s.Source)
}

func zeroBased(v uint32) uint32 {
	if v == 0 {
		return 0
	}
	return v - 1
}

func SpanNew(lineStart, lineEnd, columnStart, columnEnd uint32) Span {
	return Span{
		LineStart:   lineStart,
		LineEnd:     lineEnd,
		ColumnStart: columnStart,
		ColumnEnd:   columnEnd,
	}
}

// SpanFrom joins the outer bounds of two spans.
func SpanFrom(start, end Span) Span {
	return Span{
		LineStart:   start.LineStart,
		LineEnd:     end.LineEnd,
		ColumnStart: start.ColumnStart,
		ColumnEnd:   end.ColumnEnd,
		Source:      start.Source,
	}
}

func MaxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func (s Span) ToLocation() protocol.Location {
	return protocol.Location{
		URI:   file_path.ToURI(s.Source),
		Range: s.ToRange(),
	}
}
