package catalog

import (
	"context"
	"log/slog"
	"sync"

	drillStore "laxhq/internal/adapters/storage/drill"
	strategyStore "laxhq/internal/adapters/storage/strategy"
	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/strategy"
)

// Service caches the drill and strategy catalogs for the practice planner.
// A failed fetch degrades to an empty list with a logged diagnostic — callers
// never see an error; Refresh is the manual recovery path.
type Service struct {
	drillStore    drillStore.Store
	strategyStore strategyStore.Store

	mu         sync.RWMutex
	drills     []drill.Drill
	strategies []strategy.Strategy
}

// NewService creates a catalog service over the given stores.
// POST: Returns a service with empty caches; call Refresh to populate
func NewService(drills drillStore.Store, strategies strategyStore.Store) *Service {
	return &Service{drillStore: drills, strategyStore: strategies}
}

// Refresh re-fetches both catalogs, ordered by title/name. Each kind fails
// independently: a failed read empties that kind's cache and logs, it never
// propagates.
// POST: Caches reflect the latest successful or failed reads
func (s *Service) Refresh(ctx context.Context) {
	drills, err := s.drillStore.List(ctx)
	if err != nil {
		slog.Error("catalog_event", "event", "drill_fetch_failed", "error", err)
		drills = nil
	}

	strategies, err := s.strategyStore.List(ctx)
	if err != nil {
		slog.Error("catalog_event", "event", "strategy_fetch_failed", "error", err)
		strategies = nil
	}

	s.mu.Lock()
	s.drills = drills
	s.strategies = strategies
	s.mu.Unlock()

	slog.Info("catalog_event", "event", "catalog_refreshed", "drills", len(drills), "strategies", len(strategies))
}

// Drills returns the cached drill catalog.
// INVARIANT: The returned slice is a copy; callers cannot mutate the cache
func (s *Service) Drills() []drill.Drill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]drill.Drill, len(s.drills))
	copy(out, s.drills)
	return out
}

// Strategies returns the cached strategy catalog.
// INVARIANT: The returned slice is a copy; callers cannot mutate the cache
func (s *Service) Strategies() []strategy.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]strategy.Strategy, len(s.strategies))
	copy(out, s.strategies)
	return out
}
