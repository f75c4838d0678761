package types

import "strings"

// Document is an ordered sequence of classified lines in file order. Order is
// load-bearing: ownership follows last-matching-pattern-wins, so a later rule
// overrides earlier ones for any path both cover.
//
// The document keeps the source text it was parsed from; every Span indexes
// into it. Lines never copy token text beyond what their fields need, and
// Render reconstructs the input byte-for-byte from the spans.
type Document struct {
	Source string `json:"source"`
	Lines  []Line `json:"lines"`
}

// Render reconstructs the original text from the document's lines, including
// each line's terminator exactly as it appeared (LF, CRLF, or none on the
// final line).
func (d *Document) Render() string {
	var b strings.Builder
	b.Grow(len(d.Source))
	for i, ln := range d.Lines {
		b.WriteString(d.Source[ln.Span.Offset:ln.Span.End()])
		termEnd := uint64(len(d.Source))
		if i+1 < len(d.Lines) {
			termEnd = d.Lines[i+1].Span.Offset
		}
		b.WriteString(d.Source[ln.Span.End():termEnd])
	}
	return b.String()
}

// Rules returns the rule lines of the document, in file order.
func (d *Document) Rules() []Line {
	var rules []Line
	for _, ln := range d.Lines {
		if ln.IsRule() {
			rules = append(rules, ln)
		}
	}
	return rules
}

// Owners returns every owner entry in the document, in file order. Entries
// are not deduplicated; an owner listed on three lines appears three times.
func (d *Document) Owners() []Owner {
	var owners []Owner
	for _, ln := range d.Lines {
		if ln.IsRule() {
			owners = append(owners, ln.Owners...)
		}
	}
	return owners
}

// EOFSpan returns a zero-length span at the very end of the source, pointing
// one past the last line. Document-level findings that still want a stable
// anchor position use it.
func (d *Document) EOFSpan() Span {
	if len(d.Lines) == 0 {
		return Point(0, 1, 1)
	}
	last := d.Lines[len(d.Lines)-1]
	return Point(last.Span.End(), last.Span.Line, last.Span.Column+last.Span.Length)
}
