package types

// LineKind classifies a single line of a CODEOWNERS file.
type LineKind string

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = "blank"

	// LineComment is a line whose first non-whitespace character is #.
	LineComment LineKind = "comment"

	// LineRule is a pattern followed by zero or more owners.
	LineRule LineKind = "rule"

	// LineInvalid is a line that could not be classified.
	LineInvalid LineKind = "invalid"
)

// Pattern is the first whitespace-delimited token of a rule line, unmodified.
type Pattern struct {
	Text string `json:"text"`
	Span Span   `json:"span"`
}

// Line is one classified line of a CODEOWNERS document. Span covers the
// entire untrimmed line content up to, but not including, its terminator.
// Kind-specific fields are populated only for the matching kind.
type Line struct {
	Kind LineKind `json:"kind"`
	Span Span     `json:"span"`

	// Content is the comment text after the leading #, for LineComment.
	Content string `json:"content,omitempty"`

	// Pattern and Owners are set for LineRule. Owners may be empty.
	Pattern *Pattern `json:"pattern,omitempty"`
	Owners  []Owner  `json:"owners,omitempty"`

	// Raw preserves the original text and Err carries the diagnosis, for
	// LineInvalid.
	Raw string `json:"raw,omitempty"`
	Err string `json:"error,omitempty"`
}

// IsRule reports whether the line is a rule line.
func (l Line) IsRule() bool {
	return l.Kind == LineRule
}
