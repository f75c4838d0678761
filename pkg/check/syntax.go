package check

import (
	"context"
	"fmt"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// Syntax flags lines the parser could not classify, rules without owners, and
// non-team owners when the configuration demands teams.
type Syntax struct{}

// NewSyntax creates the syntax check.
func NewSyntax() *Syntax {
	return &Syntax{}
}

func (c *Syntax) Name() string { return NameSyntax }

func (c *Syntax) Run(_ context.Context, cc *Context) ([]types.Issue, error) {
	issues := []types.Issue{}
	for _, line := range cc.Document.Lines {
		switch line.Kind {
		case types.LineInvalid:
			issues = append(issues, types.ErrorIssue(line.Span, line.Err))
		case types.LineRule:
			if len(line.Owners) == 0 && !cc.Config.AllowUnownedPatterns {
				issues = append(issues, types.ErrorIssue(line.Pattern.Span,
					fmt.Sprintf("pattern '%s' has no owners", line.Pattern.Text)))
			}
			if cc.Config.OwnersMustBeTeams {
				for _, o := range line.Owners {
					if o.Kind == types.OwnerTeam || cc.Config.IgnoresOwner(o.Text) {
						continue
					}
					issues = append(issues, types.ErrorIssue(o.Span,
						fmt.Sprintf("owner '%s' must be a team (@org/team)", o.Text)))
				}
			}
		}
	}
	return issues, nil
}
