package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"laxhq/internal/domain/drill"
	"laxhq/internal/domain/strategy"
)

type fakeDrillStore struct {
	drills []drill.Drill
	err    error
}

func (f *fakeDrillStore) GetByID(context.Context, string) (drill.Drill, error) {
	return drill.Drill{}, errors.New("not implemented")
}
func (f *fakeDrillStore) Save(context.Context, drill.Drill) error { return nil }
func (f *fakeDrillStore) Delete(context.Context, string) error    { return nil }
func (f *fakeDrillStore) List(context.Context) ([]drill.Drill, error) {
	return f.drills, f.err
}
func (f *fakeDrillStore) ListByCategory(context.Context, string) ([]drill.Drill, error) {
	return f.drills, f.err
}

type fakeStrategyStore struct {
	strategies []strategy.Strategy
	err        error
}

func (f *fakeStrategyStore) GetByID(context.Context, string) (strategy.Strategy, error) {
	return strategy.Strategy{}, errors.New("not implemented")
}
func (f *fakeStrategyStore) Save(context.Context, strategy.Strategy) error { return nil }
func (f *fakeStrategyStore) Delete(context.Context, string) error          { return nil }
func (f *fakeStrategyStore) List(context.Context) ([]strategy.Strategy, error) {
	return f.strategies, f.err
}
func (f *fakeStrategyStore) ListByCategory(context.Context, string) ([]strategy.Strategy, error) {
	return f.strategies, f.err
}

func TestServiceRefreshPopulatesCaches(t *testing.T) {
	svc := NewService(
		&fakeDrillStore{drills: sampleDrills()},
		&fakeStrategyStore{strategies: []strategy.Strategy{{ID: "s1", Name: "Zone"}}},
	)

	assert.Empty(t, svc.Drills(), "caches start empty")

	svc.Refresh(context.Background())

	assert.Len(t, svc.Drills(), 4)
	assert.Len(t, svc.Strategies(), 1)
}

func TestServiceRefreshFailureDegradesToEmpty(t *testing.T) {
	drills := &fakeDrillStore{drills: sampleDrills()}
	strategies := &fakeStrategyStore{strategies: []strategy.Strategy{{ID: "s1", Name: "Zone"}}}
	svc := NewService(drills, strategies)
	svc.Refresh(context.Background())

	drills.err = errors.New("connection reset")
	svc.Refresh(context.Background())

	assert.Empty(t, svc.Drills(), "failed kind empties its cache")
	assert.Len(t, svc.Strategies(), 1, "other kind unaffected")
}

func TestServiceDrillsReturnsCopy(t *testing.T) {
	svc := NewService(&fakeDrillStore{drills: sampleDrills()}, &fakeStrategyStore{})
	svc.Refresh(context.Background())

	got := svc.Drills()
	got[0].Title = "tampered"

	assert.Equal(t, "West Genny Ground Balls", svc.Drills()[0].Title)
}
