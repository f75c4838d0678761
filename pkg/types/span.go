package types

// Span identifies a contiguous byte slice of the original CODEOWNERS text.
// Offset is 0-based, Line and Column are 1-based, Length is in bytes.
type Span struct {
	Offset uint64 `json:"offset"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Length uint32 `json:"length"`
}

// Point returns a zero-length span at the given position.
func Point(offset uint64, line, column uint32) Span {
	return Span{Offset: offset, Line: line, Column: column}
}

// End returns the byte offset one past the last byte covered by the span.
func (s Span) End() uint64 {
	return s.Offset + uint64(s.Length)
}

// Extend returns a span covering both s and other. The result starts at the
// earlier of the two and ends at the later end offset; line and column follow
// the earlier span.
func (s Span) Extend(other Span) Span {
	start, end := s, other
	if other.Offset < s.Offset {
		start, end = other, s
	}
	length := end.End() - start.Offset
	return Span{
		Offset: start.Offset,
		Line:   start.Line,
		Column: start.Column,
		Length: uint32(length),
	}
}
