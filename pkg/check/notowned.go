package check

import (
	"context"
	"fmt"

	"github.com/ownerlint/ownerlint/pkg/match"
	"github.com/ownerlint/ownerlint/pkg/types"
	"github.com/ownerlint/ownerlint/pkg/walker"
)

// NotOwned reports repository files that end up with no effective owner:
// either no rule covers them, the last covering rule is a negation, or the
// winning rule lists no owners. Findings carry no span since they describe
// the repository tree, not a position in the CODEOWNERS text.
type NotOwned struct{}

// NewNotOwned creates the not-owned files check.
func NewNotOwned() *NotOwned {
	return &NotOwned{}
}

func (c *NotOwned) Name() string { return NameNotOwned }

func (c *NotOwned) Run(ctx context.Context, cc *Context) ([]types.Issue, error) {
	issues := []types.Issue{}
	if cc.Config.AllowUnownedPatterns {
		return issues, nil
	}

	var patterns []*match.Pattern
	var rules []types.Line
	for _, line := range cc.Document.Lines {
		if line.IsRule() {
			patterns = append(patterns, match.Compile(line.Pattern.Text))
			rules = append(rules, line)
		}
	}
	ruleset := match.NewRuleset(patterns)

	skips := make([]*match.Pattern, 0, len(cc.Config.SkipPatterns))
	for _, s := range cc.Config.SkipPatterns {
		skips = append(skips, match.Compile(s))
	}

	// Skip exclusion applies before ownership resolution, so a skipped
	// path never sees the rules at all, negations included.
	w := walker.New(walker.ForNotOwnedCheck(cc.RepoRoot))
	err := w.Walk(ctx, func(entry match.Entry) error {
		for _, sp := range skips {
			if sp.Covers(entry.Path) {
				return nil
			}
		}
		winner := ruleset.Winner(entry.Path)
		if winner >= 0 && len(rules[winner].Owners) > 0 {
			return nil
		}
		issues = append(issues, types.Issue{
			Message:  fmt.Sprintf("file '%s' is not covered by any CODEOWNERS rule", entry.Path),
			Severity: types.SeverityWarning,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}
