package lookup

import (
	"context"
	"fmt"
	"sync"
)

// Future is a single-shot promise of a Lookup. It bridges callers that build
// their capability asynchronously (token exchange, client warm-up) with the
// owners check, which always consumes a plain Lookup: wrap the future with
// Deferred and hand that over before resolution finishes.
type Future struct {
	once sync.Once
	done chan struct{}
	lk   Lookup
	err  error
}

// NewFuture creates an unresolved future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved wraps an already-built Lookup in a resolved future. Synchronous
// callers use this at the boundary so both calling conventions flow through
// one contract.
func Resolved(lk Lookup) *Future {
	f := NewFuture()
	f.Resolve(lk, nil)
	return f
}

// Resolve supplies the Lookup (or the construction error). Only the first
// call has any effect.
func (f *Future) Resolve(lk Lookup, err error) {
	f.once.Do(func() {
		f.lk = lk
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future resolves or ctx is cancelled.
func (f *Future) Await(ctx context.Context) (Lookup, error) {
	select {
	case <-f.done:
		return f.lk, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Deferred returns a Lookup whose calls wait for the future to resolve and
// then delegate to it.
func Deferred(f *Future) Lookup {
	return &deferredLookup{future: f}
}

type deferredLookup struct {
	future *Future
}

func (d *deferredLookup) UserExists(ctx context.Context, name string) (bool, error) {
	lk, err := d.future.Await(ctx)
	if err != nil {
		return false, fmt.Errorf("awaiting lookup capability: %w", err)
	}
	return lk.UserExists(ctx, name)
}

func (d *deferredLookup) TeamExists(ctx context.Context, org, team string) (TeamStatus, error) {
	lk, err := d.future.Await(ctx)
	if err != nil {
		return "", fmt.Errorf("awaiting lookup capability: %w", err)
	}
	return lk.TeamExists(ctx, org, team)
}
