package store

import (
	"context"
	"sync"
	"time"
)

type ownerRecord struct {
	status    string
	checkedAt time.Time
}

// MemoryStore implements Store with in-process maps. It serves tests and
// one-shot runs where persisting verification results buys nothing.
type MemoryStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	owners map[string]ownerRecord
}

// NewMemory creates a new in-memory store.
func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		owners: make(map[string]ownerRecord),
	}
}

// GetOwner reports the cached status for an owner key. Entries older than
// the TTL count as absent.
func (m *MemoryStore) GetOwner(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.owners[key]
	if !ok {
		return "", false, nil
	}
	if m.ttl > 0 && m.now().Sub(rec.checkedAt) > m.ttl {
		return "", false, nil
	}
	return rec.status, true, nil
}

// PutOwner records the status for an owner key, replacing any earlier entry.
func (m *MemoryStore) PutOwner(_ context.Context, key, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.owners[key] = ownerRecord{status: status, checkedAt: m.now()}
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
