package check

import (
	"context"
	"fmt"

	"github.com/ownerlint/ownerlint/pkg/match"
	"github.com/ownerlint/ownerlint/pkg/types"
	"github.com/ownerlint/ownerlint/pkg/walker"
)

// Files warns about rules whose pattern matches nothing in the repository
// tree: dead entries that silently assign no ownership. Negated patterns and
// patterns listed in SkipPatterns are never evaluated.
type Files struct{}

// NewFiles creates the unmatched-patterns check.
func NewFiles() *Files {
	return &Files{}
}

func (c *Files) Name() string { return NameFiles }

func (c *Files) Run(ctx context.Context, cc *Context) ([]types.Issue, error) {
	entries, err := walker.New(walker.ForFilesCheck(cc.RepoRoot)).Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	skip := make(map[string]struct{}, len(cc.Config.SkipPatterns))
	for _, s := range cc.Config.SkipPatterns {
		skip[s] = struct{}{}
	}

	issues := []types.Issue{}
	for _, line := range cc.Document.Lines {
		if !line.IsRule() {
			continue
		}
		text := line.Pattern.Text
		if _, skipped := skip[text]; skipped {
			continue
		}
		compiled := match.Compile(text)
		if compiled.Negated() {
			continue
		}
		if len(match.MatchedSet(compiled, entries)) == 0 {
			issues = append(issues, types.WarningIssue(line.Pattern.Span,
				fmt.Sprintf("pattern '%s' does not match any files", text)))
		}
	}
	return issues, nil
}
