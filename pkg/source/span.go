// Package source tracks the buffers handed to the lexer and the byte spans
// that later stages use to point back into them.
package source

import "fmt"

// ID identifies a buffer registered in a Map. The zero ID is an anonymous
// buffer that was never registered.
type ID int

// Span is a half-open byte range [Start, End) within one source buffer.
type Span struct {
	Start  int
	End    int
	Source ID
}

// NewSpan builds a span, swapping the offsets if they arrive reversed.
func NewSpan(start, end int, id ID) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end, Source: id}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Text slices the covered bytes out of text, clamping to its bounds.
func (s Span) Text(text string) string {
	start, end := clamp(s.Start, len(text)), clamp(s.End, len(text))
	if end < start {
		return ""
	}
	return text[start:end]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

func clamp(v, max int) int {
	switch {
	case v < 0:
		return 0
	case v > max:
		return max
	default:
		return v
	}
}
