package check

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ownerlint/ownerlint/pkg/lookup"
	"github.com/ownerlint/ownerlint/pkg/types"
)

// DefaultLookupWorkers bounds concurrent identity lookups when no explicit
// limit is configured.
const DefaultLookupWorkers = 10

// Owners verifies user and team owners against an identity provider. Each
// unique owner text is looked up exactly once no matter how many lines
// reference it; the finding points at the first occurrence. Emails are never
// verified, and a failed lookup becomes a warning rather than aborting the
// remaining verifications.
type Owners struct {
	lookup  lookup.Lookup
	workers int
}

// OwnersConfig configures the owners check.
type OwnersConfig struct {
	Lookup  lookup.Lookup
	Workers int // max concurrent lookups, DefaultLookupWorkers when <= 0
}

// NewOwners creates the owners check.
func NewOwners(cfg OwnersConfig) *Owners {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultLookupWorkers
	}
	return &Owners{lookup: cfg.Lookup, workers: cfg.Workers}
}

func (c *Owners) Name() string { return NameOwners }

func (c *Owners) Run(ctx context.Context, cc *Context) ([]types.Issue, error) {
	unique := uniqueOwners(cc)
	if len(unique) == 0 {
		return []types.Issue{}, nil
	}

	// One slot per owner keeps the output in document order regardless of
	// which lookup finishes first.
	found := make([]*types.Issue, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, o := range unique {
		g.Go(func() error {
			found[i] = c.verify(gctx, o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	issues := []types.Issue{}
	for _, iss := range found {
		if iss != nil {
			issues = append(issues, *iss)
		}
	}
	return issues, nil
}

// uniqueOwners collects the first occurrence of each non-ignored, non-email
// owner text, in document order.
func uniqueOwners(cc *Context) []types.Owner {
	var unique []types.Owner
	seen := make(map[string]struct{})
	for _, line := range cc.Document.Lines {
		if !line.IsRule() {
			continue
		}
		for _, o := range line.Owners {
			if o.Kind == types.OwnerEmail || cc.Config.IgnoresOwner(o.Text) {
				continue
			}
			if _, dup := seen[o.Text]; dup {
				continue
			}
			seen[o.Text] = struct{}{}
			unique = append(unique, o)
		}
	}
	return unique
}

func (c *Owners) verify(ctx context.Context, o types.Owner) *types.Issue {
	switch o.Kind {
	case types.OwnerUser:
		exists, err := c.lookup.UserExists(ctx, o.Name)
		switch {
		case err != nil:
			return ref(types.WarningIssue(o.Span,
				fmt.Sprintf("could not verify owner '%s' - %s", o.Text, err)))
		case !exists:
			return ref(types.ErrorIssue(o.Span,
				fmt.Sprintf("owner '%s' not found - user does not exist", o.Text)))
		}
	case types.OwnerTeam:
		status, err := c.lookup.TeamExists(ctx, o.Org, o.Team)
		if err != nil {
			return ref(types.WarningIssue(o.Span,
				fmt.Sprintf("could not verify owner '%s' - %s", o.Text, err)))
		}
		switch status {
		case lookup.TeamStatusNotFound:
			return ref(types.ErrorIssue(o.Span,
				fmt.Sprintf("owner '%s' not found - team does not exist in organization", o.Text)))
		case lookup.TeamStatusUnauthorized:
			return ref(types.WarningIssue(o.Span,
				fmt.Sprintf("insufficient authorization to verify owner '%s' - may need read:org scope or team membership", o.Text)))
		}
	}
	return nil
}

func ref(i types.Issue) *types.Issue { return &i }
