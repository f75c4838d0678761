package check

import (
	"context"
	"fmt"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// DupPatterns flags rules whose pattern text already appeared on an earlier
// line. The first occurrence is left alone; every repeat is warned about,
// naming the line of the original. Comparison is by exact text, without glob
// normalization.
type DupPatterns struct{}

// NewDupPatterns creates the duplicate-patterns check.
func NewDupPatterns() *DupPatterns {
	return &DupPatterns{}
}

func (c *DupPatterns) Name() string { return NameDupPatterns }

func (c *DupPatterns) Run(_ context.Context, cc *Context) ([]types.Issue, error) {
	issues := []types.Issue{}
	firstSeen := make(map[string]uint32)
	for _, line := range cc.Document.Lines {
		if !line.IsRule() {
			continue
		}
		text := line.Pattern.Text
		if first, seen := firstSeen[text]; seen {
			issues = append(issues, types.WarningIssue(line.Pattern.Span,
				fmt.Sprintf("duplicate pattern '%s' (first defined on line %d)", text, first)))
			continue
		}
		firstSeen[text] = line.Span.Line
	}
	return issues, nil
}
