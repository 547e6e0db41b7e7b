package projections

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	planStore "laxhq/internal/adapters/storage/plan"
)

// ListPlansQuery carries query parameters. An empty TeamID lists standalone
// plans saved outside any team.
type ListPlansQuery struct {
	TeamID string
}

// PlanSummary is one row of the saved-plans list.
type PlanSummary struct {
	ID              string
	Title           string
	PracticeDate    string
	DurationMinutes int
	SlotCount       int
	DrillCount      int
	UpdatedAt       time.Time
}

// ListPlansDeps holds dependencies for the plan list projection.
type ListPlansDeps struct {
	PlanStore planStore.Store
}

// QueryListPlans returns plan summaries for a team, newest practice first.
// Slot and drill counts come from a shallow read of the drill_sequence blob;
// a record with an unreadable blob still lists, with zero counts.
// POST: Results are ordered by practice date descending, then title
func QueryListPlans(ctx context.Context, query ListPlansQuery, deps ListPlansDeps) ([]PlanSummary, error) {
	records, err := deps.PlanStore.ListByTeamID(ctx, query.TeamID)
	if err != nil {
		return nil, err
	}

	summaries := make([]PlanSummary, 0, len(records))
	for _, r := range records {
		slots, drills := countSequence(r.DrillSequence)
		summaries = append(summaries, PlanSummary{
			ID:              r.ID,
			Title:           r.Title,
			PracticeDate:    r.PracticeDate,
			DurationMinutes: r.DurationMinutes,
			SlotCount:       slots,
			DrillCount:      drills,
			UpdatedAt:       r.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].PracticeDate != summaries[j].PracticeDate {
			return summaries[i].PracticeDate > summaries[j].PracticeDate
		}
		return summaries[i].Title < summaries[j].Title
	})
	return summaries, nil
}

// countSequence does a shallow parse of a drill_sequence blob for counts.
func countSequence(data json.RawMessage) (slots, drills int) {
	if len(data) == 0 {
		return 0, 0
	}
	var shallow struct {
		TimeSlots []struct {
			Drills []json.RawMessage `json:"drills"`
		} `json:"timeSlots"`
	}
	if err := json.Unmarshal(data, &shallow); err != nil {
		return 0, 0
	}
	for _, s := range shallow.TimeSlots {
		drills += len(s.Drills)
	}
	return len(shallow.TimeSlots), drills
}
