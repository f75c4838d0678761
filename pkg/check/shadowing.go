package check

import (
	"context"
	"fmt"

	"github.com/ownerlint/ownerlint/pkg/match"
	"github.com/ownerlint/ownerlint/pkg/types"
	"github.com/ownerlint/ownerlint/pkg/walker"
)

// AvoidShadowing flags rules whose entire matched-file set is re-covered by a
// later rule. Under last-match-wins resolution such a rule can never decide
// ownership for any path, so it is dead configuration. Containment is decided
// on the actual matched sets, not pattern text, so differently spelled but
// behaviorally identical patterns are still caught.
type AvoidShadowing struct{}

// NewAvoidShadowing creates the shadowed-patterns check.
func NewAvoidShadowing() *AvoidShadowing {
	return &AvoidShadowing{}
}

func (c *AvoidShadowing) Name() string { return NameAvoidShadowing }

func (c *AvoidShadowing) Run(ctx context.Context, cc *Context) ([]types.Issue, error) {
	type rule struct {
		pattern *types.Pattern
		line    uint32
		set     map[string]struct{}
	}

	var rules []rule
	for _, line := range cc.Document.Lines {
		if line.IsRule() {
			rules = append(rules, rule{pattern: line.Pattern, line: line.Span.Line})
		}
	}

	issues := []types.Issue{}
	if len(rules) < 2 {
		return issues, nil
	}

	entries, err := walker.New(walker.ForNotOwnedCheck(cc.RepoRoot)).Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// One walk, one matched set per rule. The quadratic pair scan below
	// only touches the cached sets.
	for i := range rules {
		rules[i].set = match.MatchedSet(match.Compile(rules[i].pattern.Text), entries)
	}

	for i := 0; i < len(rules); i++ {
		if len(rules[i].set) == 0 {
			continue
		}
		for j := i + 1; j < len(rules); j++ {
			if match.IsSubset(rules[i].set, rules[j].set) {
				issues = append(issues, types.WarningIssue(rules[i].pattern.Span,
					fmt.Sprintf("pattern '%s' is shadowed by pattern '%s' on line %d",
						rules[i].pattern.Text, rules[j].pattern.Text, rules[j].line)))
			}
		}
	}
	return issues, nil
}
