package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laxhq/internal/domain/plan"
)

var stateToday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func TestStateRoundTrip(t *testing.T) {
	p := plan.NewPlan(stateToday)
	p.Info.Name = "Tuesday U14"
	p.SetupMinutes = 15
	p.SetupNotes = []string{"cones at midfield"}
	p.Goals.Defensive = "slide timing"
	p.TimeSlots = []plan.TimeSlot{
		{
			ID:              "slot-1",
			DurationMinutes: 20,
			Drills: []plan.DrillInstance{
				{PracticeID: "p1", DrillID: "d1", Title: "3v2 Continuous", CustomDuration: 20, Notes: "rotate goalies"},
			},
		},
	}
	p.Strategies = []plan.SelectedStrategy{{StrategyID: "s1", Name: "10-man Ride"}}

	data, err := EncodeState(p)
	require.NoError(t, err)

	got, err := DecodeState(data, stateToday)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecodeStateMalformed(t *testing.T) {
	_, err := DecodeState([]byte("{not json"), stateToday)
	assert.Error(t, err)
}

func TestDecodeStateFutureVersionRejected(t *testing.T) {
	_, err := DecodeState([]byte(`{"version": 99, "timeSlots": []}`), stateToday)
	assert.Error(t, err)
}

func TestDecodeStatePartialFallsBackToDefaults(t *testing.T) {
	raw := `{"version":1,"practiceInfo":{"date":"","startTime":"","field":"","duration":0},"timeSlots":[]}`

	got, err := DecodeState([]byte(raw), stateToday)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", got.Info.Date)
	assert.Equal(t, plan.DefaultStartTime, got.Info.StartTime)
	assert.Equal(t, plan.DefaultField, got.Info.Field)
	assert.Equal(t, plan.DefaultDurationMinutes, got.Info.DurationMinutes)
}

func TestDecodeStateDropsEmptySlotsAndRecalcsDuration(t *testing.T) {
	raw := `{
		"version": 1,
		"practiceInfo": {"date": "2026-03-14", "startTime": "18:00", "field": "Turf", "duration": 90},
		"timeSlots": [
			{"id": "empty", "drills": [], "duration": 10},
			{"id": "s1", "drills": [{"practiceId": "p1", "drillId": "d1", "title": "Shooting", "customDuration": 25}], "duration": 0}
		]
	}`

	got, err := DecodeState([]byte(raw), stateToday)
	require.NoError(t, err)
	require.Len(t, got.TimeSlots, 1)
	assert.Equal(t, "s1", got.TimeSlots[0].ID)
	assert.Equal(t, 25, got.TimeSlots[0].DurationMinutes)
}
