package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"laxhq/internal/adapters/http/perf"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestTimingMiddleware_EmitsEntry verifies that a request entry is recorded.
func TestTimingMiddleware_EmitsEntry(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector)(okHandler())

	req := httptest.NewRequest("GET", "/api/drills", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 1 {
		t.Errorf("TotalRecorded = %d, want 1", collector.TotalRecorded())
	}
}

// TestTimingMiddleware_SkipsStatic verifies static assets are excluded from timing.
func TestTimingMiddleware_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(100)
	handler := Timing(collector)(okHandler())

	req := httptest.NewRequest("GET", "/static/planner.css", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (static excluded)", collector.TotalRecorded())
	}
}

// TestTimingMiddleware_EntryFieldAccuracy verifies the recorded entry has correct
// method, path, and status code.
func TestTimingMiddleware_EntryFieldAccuracy(t *testing.T) {
	collector := perf.NewCollector(1)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest("POST", "/api/plans", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths len = %d, want 1", len(snap.SlowestPaths))
	}
	if snap.SlowestPaths[0].Path != "POST /api/plans" {
		t.Errorf("Path = %q, want \"POST /api/plans\"", snap.SlowestPaths[0].Path)
	}
}

// TestTimingMiddleware_PoolNoStateLeak verifies that statusWriter pool reuse
// does not leak status codes between requests.
func TestTimingMiddleware_PoolNoStateLeak(t *testing.T) {
	collector := perf.NewCollector(100)

	handler500 := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	rr1 := httptest.NewRecorder()
	handler500.ServeHTTP(rr1, httptest.NewRequest("GET", "/api/fail", nil))

	handler200 := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok")) // implicit 200
	}))
	rr2 := httptest.NewRecorder()
	handler200.ServeHTTP(rr2, httptest.NewRequest("GET", "/api/ok", nil))

	if rr2.Code != 200 {
		t.Errorf("request 2 status = %d, want 200 (pool must not leak 500)", rr2.Code)
	}
}

// TestTimingMiddleware_NilCollector verifies middleware works without a collector.
func TestTimingMiddleware_NilCollector(t *testing.T) {
	handler := Timing(nil)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/drills", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// --- Auth middleware ---

func TestAuthMiddleware_SetsSessionFromCookie(t *testing.T) {
	sessions := NewSessionStore()
	token, err := sessions.Create("a1", "coach@club.test", "coach", "team-1")
	if err != nil {
		t.Fatal(err)
	}

	var got Session
	var found bool
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/plans", nil)
	req.AddCookie(&http.Cookie{Name: "laxhq_session", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("session not set in context")
	}
	if got.TeamID != "team-1" || got.Role != "coach" {
		t.Errorf("session = %+v, want coach on team-1", got)
	}
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	handler := RequireAuth(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/plans", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestRequireRole_ForbidsWrongRole(t *testing.T) {
	handler := RequireRole("admin")(okHandler())

	req := httptest.NewRequest("GET", "/api/admin/perf", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: "a1", Role: "player"}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	sessions := NewSessionStore()
	token, _ := sessions.Create("a1", "coach@club.test", "coach", "")

	sessions.mu.Lock()
	s := sessions.sessions[token]
	s.CreatedAt = time.Now().Add(-25 * time.Hour)
	sessions.sessions[token] = s
	sessions.mu.Unlock()

	if _, ok := sessions.Get(token); ok {
		t.Error("expired session should not be returned")
	}
}

// --- Rate limiter ---

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IPs are unaffected")
	}
}
