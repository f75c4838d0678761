package check

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// ErrUnknownCheck marks a requested check name no registered check answers
// to. It fails the whole run before any check executes.
var ErrUnknownCheck = errors.New("unknown check")

// Runner executes a selected subset of its registered checks against one
// shared context.
type Runner struct {
	checks map[string]Check
	order  []string
}

// NewRunner registers checks by name. Registration order is preserved only
// for documentation; execution is concurrent.
func NewRunner(checks ...Check) *Runner {
	r := &Runner{checks: make(map[string]Check, len(checks))}
	for _, c := range checks {
		if _, dup := r.checks[c.Name()]; !dup {
			r.order = append(r.order, c.Name())
		}
		r.checks[c.Name()] = c
	}
	return r
}

// Names returns the registered check names in registration order.
func (r *Runner) Names() []string {
	return append([]string(nil), r.order...)
}

// Run validates the requested names, executes those checks concurrently over
// cc, and aggregates issues per check name. Every requested check appears in
// the result, with an empty issue list when it found nothing. A check
// returning an error (an unreadable repository root, typically) fails the
// whole run.
func (r *Runner) Run(ctx context.Context, cc *Context, requested []string) (map[string][]types.Issue, error) {
	selected := make([]Check, 0, len(requested))
	for _, name := range requested {
		c, ok := r.checks[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
		}
		selected = append(selected, c)
	}

	results := make(map[string][]types.Issue, len(selected))
	for _, c := range selected {
		results[c.Name()] = []types.Issue{}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range selected {
		g.Go(func() error {
			issues, err := c.Run(gctx, cc)
			if err != nil {
				return fmt.Errorf("check %s: %w", c.Name(), err)
			}
			mu.Lock()
			if issues != nil {
				results[c.Name()] = issues
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
