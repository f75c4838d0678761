package lookup

import "context"

// Cache persists owner lookup outcomes between runs. Implementations are
// expected to be safe for concurrent use.
type Cache interface {
	GetOwner(ctx context.Context, key string) (status string, ok bool, err error)
	PutOwner(ctx context.Context, key, status string) error
}

// Cached wraps a Lookup with a Cache. Only definitive outcomes are stored:
// an owner that exists or is confirmed absent. Unauthorized results and
// lookup errors pass through uncached so a later run with better
// credentials can still resolve them.
type Cached struct {
	next  Lookup
	cache Cache
}

// NewCached creates a caching decorator around next.
func NewCached(next Lookup, cache Cache) *Cached {
	return &Cached{next: next, cache: cache}
}

func (c *Cached) UserExists(ctx context.Context, name string) (bool, error) {
	key := "user:" + name
	if status, ok, err := c.cache.GetOwner(ctx, key); err == nil && ok {
		return status == string(TeamStatusExists), nil
	}

	exists, err := c.next.UserExists(ctx, name)
	if err != nil {
		return false, err
	}

	status := TeamStatusNotFound
	if exists {
		status = TeamStatusExists
	}
	// Cache write failures degrade to a miss on the next run.
	_ = c.cache.PutOwner(ctx, key, string(status))
	return exists, nil
}

func (c *Cached) TeamExists(ctx context.Context, org, team string) (TeamStatus, error) {
	key := "team:" + org + "/" + team
	if status, ok, err := c.cache.GetOwner(ctx, key); err == nil && ok {
		return TeamStatus(status), nil
	}

	result, err := c.next.TeamExists(ctx, org, team)
	if err != nil {
		return "", err
	}

	if result == TeamStatusExists || result == TeamStatusNotFound {
		_ = c.cache.PutOwner(ctx, key, string(result))
	}
	return result, nil
}
