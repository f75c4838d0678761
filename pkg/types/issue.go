package types

// Severity ranks how serious a validation finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding. Span is nil for document-level
// findings such as an unowned file, which have no position in the
// CODEOWNERS text itself.
type Issue struct {
	Span     *Span    `json:"span,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ErrorIssue builds an error-severity issue at the given span.
func ErrorIssue(span Span, message string) Issue {
	s := span
	return Issue{Span: &s, Message: message, Severity: SeverityError}
}

// WarningIssue builds a warning-severity issue at the given span.
func WarningIssue(span Span, message string) Issue {
	s := span
	return Issue{Span: &s, Message: message, Severity: SeverityWarning}
}
