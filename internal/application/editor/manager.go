package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"laxhq/internal/adapters/storage/snapshot"
	"laxhq/internal/domain/plan"
)

// Manager owns one editor session per team, creating it on first open and
// restoring its autosave snapshot when one exists. A corrupt snapshot is
// discarded and the session opens with defaults; restore never blocks editing.
type Manager struct {
	store snapshot.Store
	quiet time.Duration
	deps  Deps

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager backed by the given snapshot store.
// PRE: store is non-nil; deps.GenerateID and deps.Now are non-nil
func NewManager(store snapshot.Store, quiet time.Duration, deps Deps) *Manager {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Manager{
		store:    store,
		quiet:    quiet,
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// Open returns the team's editor session, creating and restoring it on first
// use. The second return reports whether a saved snapshot was restored,
// so callers can tell the coach their unsaved work came back.
func (m *Manager) Open(ctx context.Context, teamID string) (*Session, bool) {
	key := SnapshotKey(teamID)

	m.mu.Lock()
	if s, ok := m.sessions[key]; ok {
		m.mu.Unlock()
		return s, false
	}
	m.mu.Unlock()

	// Build outside the lock so a slow snapshot read cannot stall opens of
	// other sessions.
	session, restored := m.buildSession(ctx, key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[key]; ok {
		session.saver.Stop()
		return existing, false
	}
	m.sessions[key] = session
	return session, restored
}

// Close flushes and removes the team's session. Safe to call for teams with
// no open session.
func (m *Manager) Close(ctx context.Context, teamID string) error {
	key := SnapshotKey(teamID)

	m.mu.Lock()
	session, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}
	err := session.saver.Flush(ctx)
	session.saver.Stop()
	return err
}

// Saved records that the team's plan reached the plan store. The session
// stays open so the coach keeps editing the saved plan; any pending autosave
// is cancelled and the stored snapshot deleted so it cannot resurrect the
// pre-save draft.
func (m *Manager) Saved(ctx context.Context, teamID string) error {
	key := SnapshotKey(teamID)

	m.mu.Lock()
	session, ok := m.sessions[key]
	m.mu.Unlock()

	if ok {
		session.saver.Cancel()
		session.MarkSaved()
	}
	if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return err
	}
	return nil
}

// Discard removes the team's session and its snapshot, abandoning unsaved
// work so the next open starts from defaults.
func (m *Manager) Discard(ctx context.Context, teamID string) error {
	key := SnapshotKey(teamID)

	m.mu.Lock()
	session, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if ok {
		session.saver.Stop()
	}
	if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		return err
	}
	return nil
}

func (m *Manager) buildSession(ctx context.Context, key string) (*Session, bool) {
	var session *Session
	saver := NewAutosaver(m.store, key, m.quiet, func() plan.Plan {
		return session.Plan()
	})
	session = NewSession(m.deps, saver)

	data, err := m.store.Get(ctx, key)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		return session, false
	case err != nil:
		slog.Error("editor_event", "event", "snapshot_read_failed", "key", key, "error", err)
		return session, false
	}

	restored, err := DecodeState(data, m.deps.Now())
	if err != nil {
		slog.Warn("editor_event", "event", "snapshot_discarded", "key", key, "error", err)
		if delErr := m.store.Delete(ctx, key); delErr != nil {
			slog.Error("editor_event", "event", "snapshot_delete_failed", "key", key, "error", delErr)
		}
		return session, false
	}

	session.Replace(restored)
	session.MarkSaved()
	slog.Info("editor_event", "event", "snapshot_restored", "key", key)
	return session, true
}
