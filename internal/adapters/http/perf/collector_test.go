package perf

import (
	"fmt"
	"testing"
	"time"
)

// TestCollector_RecordAndSnapshot verifies basic aggregation.
func TestCollector_RecordAndSnapshot(t *testing.T) {
	c := NewCollector(16)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /api/drills", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /api/drills", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "QueryContext", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 5)

	if snap.TotalRecorded != 3 {
		t.Errorf("TotalRecorded = %d, want 3", snap.TotalRecorded)
	}
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	p := snap.SlowestPaths[0]
	if p.Count != 2 || p.AvgMs != 20 || p.MaxMs != 30 {
		t.Errorf("path stat = %+v, want count 2, avg 20, max 30", p)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries len = %d, want 1", len(snap.SlowestQueries))
	}
}

// TestCollector_RingOverwrite verifies the oldest entries are overwritten when full.
func TestCollector_RingOverwrite(t *testing.T) {
	c := NewCollector(4)
	now := time.Now()

	for i := 0; i < 10; i++ {
		c.Record(Entry{Kind: KindRequest, Path: fmt.Sprintf("GET /p%d", i), DurationMs: 1, Timestamp: now})
	}

	snap := c.Snapshot(now.Add(-time.Minute), 100)
	if snap.TotalRecorded != 10 {
		t.Errorf("TotalRecorded = %d, want 10", snap.TotalRecorded)
	}
	// Only the last 4 survive in the buffer.
	if len(snap.SlowestPaths) != 4 {
		t.Errorf("SlowestPaths len = %d, want 4", len(snap.SlowestPaths))
	}
}

// TestCollector_SinceFilter verifies the since cutoff excludes old entries.
func TestCollector_SinceFilter(t *testing.T) {
	c := NewCollector(8)
	old := time.Now().Add(-time.Hour)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 1, Timestamp: old})
	c.Record(Entry{Kind: KindRequest, Path: "GET /new", DurationMs: 1, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "GET /new" {
		t.Errorf("SlowestPaths = %+v, want only GET /new", snap.SlowestPaths)
	}
}

// TestPercentile verifies interpolation on a known distribution.
func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	if got := percentile(sorted, 50); got != 25 {
		t.Errorf("p50 = %v, want 25", got)
	}
	if got := percentile(sorted, 100); got != 40 {
		t.Errorf("p100 = %v, want 40", got)
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("p50 of empty = %v, want 0", got)
	}
}
