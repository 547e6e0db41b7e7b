package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	planStore "laxhq/internal/adapters/storage/plan"
	"laxhq/internal/domain/plan"
)

// Save errors
var (
	ErrEmptyPlanTitle = errors.New("plan title cannot be empty")
	ErrPlanNotFound   = errors.New("practice plan not found")
)

// SavePlanInput carries input for the save orchestrator. An empty PlanID
// creates a new record; a non-empty one overwrites the existing record
// wholesale (last write wins, there is no merge).
type SavePlanInput struct {
	PlanID    string
	TeamID    string
	AccountID string
	Plan      plan.Plan
}

// SavePlanDeps holds dependencies for SavePlan.
type SavePlanDeps struct {
	PlanStore  planStore.Store
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSavePlan persists an editor plan as a plan record. The timeline,
// goals and strategies are folded into the versioned drill_sequence blob;
// title, date, allotted duration and notes get their own columns.
// PRE: Plan metadata validates; deps.GenerateID and deps.Now are non-nil
// POST: Returns the record ID; updates preserve the record's CreatedAt
// INVARIANT: The stored blob round-trips through ExecuteLoadPlan losslessly
func ExecuteSavePlan(ctx context.Context, input SavePlanInput, deps SavePlanDeps) (string, error) {
	if strings.TrimSpace(input.Plan.Info.Name) == "" {
		return "", ErrEmptyPlanTitle
	}
	if err := input.Plan.Info.Validate(); err != nil {
		return "", err
	}

	sequence, err := encodeSequence(input.Plan)
	if err != nil {
		return "", err
	}

	now := deps.Now()
	record := planStore.Record{
		ID:              input.PlanID,
		TeamID:          input.TeamID,
		Title:           input.Plan.Info.Name,
		PracticeDate:    input.Plan.Info.Date,
		DurationMinutes: input.Plan.Info.DurationMinutes,
		Notes:           input.Plan.PracticeNotes,
		DrillSequence:   sequence,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	event := "plan_updated"
	if record.ID == "" {
		record.ID = deps.GenerateID()
		event = "plan_created"
	} else {
		existing, err := deps.PlanStore.GetByID(ctx, record.ID)
		if err != nil {
			return "", ErrPlanNotFound
		}
		record.CreatedAt = existing.CreatedAt
	}

	if err := deps.PlanStore.Save(ctx, record); err != nil {
		return "", err
	}

	slog.Info("plan_event", "event", event, "plan_id", record.ID, "team_id", input.TeamID, "account_id", input.AccountID, "slots", len(input.Plan.TimeSlots))
	return record.ID, nil
}
