package editor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"laxhq/internal/adapters/storage/snapshot"
	"laxhq/internal/domain/plan"
)

// DefaultQuietPeriod is how long the editor must stay idle before a pending
// autosave fires. Every new mutation restarts the countdown.
const DefaultQuietPeriod = 3 * time.Second

// SnapshotKeyPrefix namespaces autosave snapshots per team.
const SnapshotKeyPrefix = "practice-plan-"

// SnapshotKey returns the autosave key for a team's editor session.
// POST: Distinct team ids map to distinct keys
func SnapshotKey(teamID string) string {
	if teamID == "" {
		return SnapshotKeyPrefix + "standalone"
	}
	return SnapshotKeyPrefix + teamID
}

// Autosaver debounces snapshot writes behind a two-state machine: idle until
// the first mutation, then pending with a single timer that restarts on every
// further mutation. N mutations inside one quiet period produce exactly one
// write. Failed writes are logged and dropped; the next mutation schedules a
// fresh attempt.
type Autosaver struct {
	store  snapshot.Store
	key    string
	quiet  time.Duration
	source func() plan.Plan

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool
}

// NewAutosaver creates an idle autosaver. source must return a plan the
// autosaver may serialize without racing the editor.
// PRE: store and source are non-nil; quiet > 0
func NewAutosaver(store snapshot.Store, key string, quiet time.Duration, source func() plan.Plan) *Autosaver {
	return &Autosaver{
		store:  store,
		key:    key,
		quiet:  quiet,
		source: source,
	}
}

// Notify records editor activity. From idle it arms the timer; while pending
// it restarts the countdown so the write only happens after a full quiet
// period with no further mutations.
func (a *Autosaver) Notify() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.pending {
		a.timer.Reset(a.quiet)
		return
	}
	a.pending = true
	a.timer = time.AfterFunc(a.quiet, a.flush)
}

// Pending reports whether a write is scheduled but not yet flushed.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

// Flush writes the current state immediately and cancels any pending timer.
// Used on explicit saves and session close so no edits are lost to a timer
// that never fires.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.pending = false
	a.mu.Unlock()

	return a.write(ctx)
}

// Cancel drops any pending write without stopping the autosaver. The next
// mutation arms the timer again.
func (a *Autosaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = false
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Stop cancels any pending write and makes further notifications no-ops.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pending = false
	if a.timer != nil {
		a.timer.Stop()
	}
}

// flush is the timer callback. It runs off the editor goroutine, so it reads
// the plan through source which takes the session lock.
func (a *Autosaver) flush() {
	a.mu.Lock()
	if a.stopped || !a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.mu.Unlock()

	if err := a.write(context.Background()); err != nil {
		slog.Error("autosave_event", "event", "write_failed", "key", a.key, "error", err)
	}
}

func (a *Autosaver) write(ctx context.Context) error {
	state, err := EncodeState(a.source())
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, a.key, state); err != nil {
		return err
	}
	slog.Debug("autosave_event", "event", "snapshot_written", "key", a.key, "bytes", len(state))
	return nil
}
