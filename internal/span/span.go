// Package span tracks half-open byte ranges into an original query
// string, so every parsed node can point back at the text it came from.
package span

import "fmt"

// Span is a half-open byte range [Begin, End) into the query string
// that produced it.
type Span struct {
	Begin int
	End   int
}

// New builds a Span, panicking if begin > end — callers of this
// package construct spans only from scanner offsets, never from
// untrusted input, so this invariant should never trip in practice.
func New(begin, end int) Span {
	if begin > end {
		panic(fmt.Sprintf("span: begin %d > end %d", begin, end))
	}
	return Span{Begin: begin, End: end}
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	begin := a.Begin
	if b.Begin < begin {
		begin = b.Begin
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Begin: begin, End: end}
}

// Slice extracts the text this span covers from the original input.
func (s Span) Slice(input string) string {
	return input[s.Begin:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Begin, s.End)
}
