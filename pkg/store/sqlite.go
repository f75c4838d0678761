package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database file. The pure-Go driver
// keeps the binary CGO-free.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLite opens (creating if needed) a SQLite-backed store at path.
func NewSQLite(path string, ttl time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

// GetOwner reports the cached status for an owner key. Entries older than
// the TTL count as absent.
func (s *SQLiteStore) GetOwner(ctx context.Context, key string) (string, bool, error) {
	var status string
	var checkedAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT status, checked_at FROM owners WHERE owner = ?", key,
	).Scan(&status, &checkedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying owner: %w", err)
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(checkedAt, 0)) > s.ttl {
		return "", false, nil
	}
	return status, true, nil
}

// PutOwner records the status for an owner key, replacing any earlier entry.
func (s *SQLiteStore) PutOwner(ctx context.Context, key, status string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO owners (owner, status, checked_at)
		VALUES (?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET status = excluded.status, checked_at = excluded.checked_at
	`, key, status, s.now().Unix())
	if err != nil {
		return fmt.Errorf("inserting owner: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
