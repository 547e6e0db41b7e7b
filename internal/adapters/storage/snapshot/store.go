package snapshot

import "context"

// Store persists editor autosave snapshots: one opaque serialized editor
// state per key, overwritten wholesale on every debounced autosave and read
// once when a session opens. Writes are best-effort from the caller's point
// of view.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, state []byte) error
	Delete(ctx context.Context, key string) error
}
