package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laxhq/internal/adapters/storage"
)

// ErrNotFound is returned when no snapshot exists for a key.
var ErrNotFound = fmt.Errorf("snapshot not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SnapshotStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the snapshot for a key.
// PRE: key is non-empty
// POST: Returns the stored state or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, "SELECT state FROM editor_snapshot WHERE key = ?", key)
	var state string
	if err := row.Scan(&state); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(state), nil
}

// Put overwrites the snapshot for a key wholesale.
// PRE: key is non-empty
// POST: Stored state for key equals the given bytes
func (s *SQLiteStore) Put(ctx context.Context, key string, state []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO editor_snapshot (key, state, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET state=excluded.state, updated_at=excluded.updated_at",
		key, string(state), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes the snapshot for a key.
// PRE: key is non-empty
// POST: No snapshot remains for key
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM editor_snapshot WHERE key = ?", key)
	return err
}
