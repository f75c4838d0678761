// Package store caches owner verification results between validation runs.
// Identity lookups are the slow part of a full validation; remembering which
// owners exist makes repeat runs cheap and keeps API usage down.
package store

import (
	"fmt"
	"time"

	"github.com/ownerlint/ownerlint/pkg/lookup"
)

// Store persists owner lookup outcomes. It satisfies lookup.Cache, so any
// Store can back lookup.Cached directly.
type Store interface {
	lookup.Cache

	// Close releases the underlying resources.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path. Use ":memory:" for a process-local
	// store that vanishes on exit.
	Path string

	// TTL bounds how long a cached result stays valid. Zero means cached
	// results never expire.
	TTL time.Duration
}

// New creates a Store. The ":memory:" path selects the in-memory backend;
// any other path opens (creating if needed) a SQLite database there.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(cfg.TTL), nil
	}

	return NewSQLite(cfg.Path, cfg.TTL)
}
