package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	mu        sync.Mutex
	userCalls int
	teamCalls int
	users     map[string]bool
	teams     map[string]TeamStatus
	err       error
}

func (c *countingLookup) UserExists(_ context.Context, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userCalls++
	if c.err != nil {
		return false, c.err
	}
	return c.users[name], nil
}

func (c *countingLookup) TeamExists(_ context.Context, org, team string) (TeamStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teamCalls++
	if c.err != nil {
		return "", c.err
	}
	if status, ok := c.teams[org+"/"+team]; ok {
		return status, nil
	}
	return TeamStatusNotFound, nil
}

type mapCache struct {
	mu     sync.Mutex
	vals   map[string]string
	getErr error
}

func newMapCache() *mapCache {
	return &mapCache{vals: make(map[string]string)}
}

func (m *mapCache) GetOwner(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	status, ok := m.vals[key]
	return status, ok, nil
}

func (m *mapCache) PutOwner(_ context.Context, key, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = status
	return nil
}

func TestStaticUserExists(t *testing.T) {
	s := NewStatic([]string{"alice", "bob"}, nil)

	tests := []struct {
		name string
		user string
		want bool
	}{
		{name: "known user", user: "alice", want: true},
		{name: "unknown user", user: "ghost", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.UserExists(context.Background(), tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticTeamExists(t *testing.T) {
	s := NewStatic(nil, []string{"acme/core", "acme/docs"})

	tests := []struct {
		name string
		org  string
		team string
		want TeamStatus
	}{
		{name: "known team", org: "acme", team: "core", want: TeamStatusExists},
		{name: "unknown team", org: "acme", team: "infra", want: TeamStatusNotFound},
		{name: "unknown org", org: "other", team: "core", want: TeamStatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.TeamExists(context.Background(), tt.org, tt.team)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFutureResolved(t *testing.T) {
	want := NewStatic([]string{"alice"}, nil)
	f := Resolved(want)

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestFutureAwaitBlocksUntilResolve(t *testing.T) {
	f := NewFuture()
	want := NewStatic([]string{"alice"}, nil)

	go func() {
		time.Sleep(10 * time.Millisecond)
		f.Resolve(want, nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := f.Await(ctx)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestFutureAwaitCancelled(t *testing.T) {
	f := NewFuture()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFutureResolveIsSingleShot(t *testing.T) {
	first := NewStatic([]string{"alice"}, nil)
	f := NewFuture()
	f.Resolve(first, nil)
	f.Resolve(NewStatic([]string{"bob"}, nil), nil)

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestDeferredDelegatesAfterResolve(t *testing.T) {
	f := NewFuture()
	lk := Deferred(f)

	f.Resolve(NewStatic([]string{"alice"}, []string{"acme/core"}), nil)

	exists, err := lk.UserExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	status, err := lk.TeamExists(context.Background(), "acme", "core")
	require.NoError(t, err)
	assert.Equal(t, TeamStatusExists, status)
}

func TestDeferredSurfacesResolutionError(t *testing.T) {
	f := NewFuture()
	f.Resolve(nil, errors.New("token exchange failed"))

	lk := Deferred(f)
	_, err := lk.UserExists(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awaiting lookup capability")
}

func TestCachedUserExists(t *testing.T) {
	next := &countingLookup{users: map[string]bool{"alice": true}}
	cache := newMapCache()
	c := NewCached(next, cache)
	ctx := context.Background()

	exists, err := c.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, next.userCalls)

	exists, err = c.UserExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, next.userCalls, "second lookup should hit the cache")

	exists, err = c.UserExists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = c.UserExists(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 2, next.userCalls, "absence is definitive and should be cached too")
}

func TestCachedTeamExists(t *testing.T) {
	next := &countingLookup{teams: map[string]TeamStatus{"acme/core": TeamStatusExists}}
	cache := newMapCache()
	c := NewCached(next, cache)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		status, err := c.TeamExists(ctx, "acme", "core")
		require.NoError(t, err)
		assert.Equal(t, TeamStatusExists, status)
	}
	assert.Equal(t, 1, next.teamCalls)

	for i := 0; i < 2; i++ {
		status, err := c.TeamExists(ctx, "acme", "infra")
		require.NoError(t, err)
		assert.Equal(t, TeamStatusNotFound, status)
	}
	assert.Equal(t, 2, next.teamCalls)
}

func TestCachedSkipsUnauthorized(t *testing.T) {
	next := &countingLookup{teams: map[string]TeamStatus{"acme/core": TeamStatusUnauthorized}}
	cache := newMapCache()
	c := NewCached(next, cache)

	for i := 0; i < 2; i++ {
		status, err := c.TeamExists(context.Background(), "acme", "core")
		require.NoError(t, err)
		assert.Equal(t, TeamStatusUnauthorized, status)
	}
	assert.Equal(t, 2, next.teamCalls, "unauthorized results must not be cached")
	assert.Empty(t, cache.vals)
}

func TestCachedSkipsErrors(t *testing.T) {
	next := &countingLookup{err: errors.New("rate limited")}
	cache := newMapCache()
	c := NewCached(next, cache)

	_, err := c.UserExists(context.Background(), "alice")
	require.Error(t, err)
	assert.Empty(t, cache.vals)
}

func TestCachedTreatsGetErrorAsMiss(t *testing.T) {
	next := &countingLookup{users: map[string]bool{"alice": true}}
	cache := newMapCache()
	cache.getErr = errors.New("cache unavailable")
	c := NewCached(next, cache)

	exists, err := c.UserExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, next.userCalls)
}
