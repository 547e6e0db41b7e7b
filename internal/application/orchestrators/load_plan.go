package orchestrators

import (
	"context"
	"log/slog"
	"time"

	planStore "laxhq/internal/adapters/storage/plan"
	"laxhq/internal/domain/plan"
)

// LoadPlanInput carries input for the load orchestrator.
type LoadPlanInput struct {
	PlanID string
}

// LoadPlanResult is a reconstructed plan plus the record metadata the editor
// does not carry.
type LoadPlanResult struct {
	Plan      plan.Plan
	TeamID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoadPlanDeps holds dependencies for LoadPlan.
type LoadPlanDeps struct {
	PlanStore planStore.Store
	Now       func() time.Time
}

// ExecuteLoadPlan fetches a plan record and rebuilds the full editor plan
// from its columns and drill_sequence blob.
// PRE: input.PlanID is non-empty
// POST: Returns ErrPlanNotFound for unknown IDs; a corrupt blob is an error,
// never a silently empty plan
func ExecuteLoadPlan(ctx context.Context, input LoadPlanInput, deps LoadPlanDeps) (LoadPlanResult, error) {
	record, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return LoadPlanResult{}, ErrPlanNotFound
	}

	p := plan.NewPlan(deps.Now())
	p.Info.Name = record.Title
	if record.PracticeDate != "" {
		p.Info.Date = record.PracticeDate
	}
	if record.DurationMinutes > 0 {
		p.Info.DurationMinutes = record.DurationMinutes
	}
	p.PracticeNotes = record.Notes

	if len(record.DrillSequence) > 0 {
		if err := decodeSequence(record.DrillSequence, &p); err != nil {
			slog.Error("plan_event", "event", "sequence_decode_failed", "plan_id", record.ID, "error", err)
			return LoadPlanResult{}, err
		}
	}

	return LoadPlanResult{
		Plan:      p,
		TeamID:    record.TeamID,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// DeletePlanInput carries input for the delete orchestrator.
type DeletePlanInput struct {
	PlanID    string
	AccountID string
}

// DeletePlanDeps holds dependencies for DeletePlan.
type DeletePlanDeps struct {
	PlanStore planStore.Store
}

// ExecuteDeletePlan removes a plan record.
// POST: Returns ErrPlanNotFound when no record exists with the given ID
func ExecuteDeletePlan(ctx context.Context, input DeletePlanInput, deps DeletePlanDeps) error {
	if _, err := deps.PlanStore.GetByID(ctx, input.PlanID); err != nil {
		return ErrPlanNotFound
	}
	if err := deps.PlanStore.Delete(ctx, input.PlanID); err != nil {
		return err
	}
	slog.Info("plan_event", "event", "plan_deleted", "plan_id", input.PlanID, "account_id", input.AccountID)
	return nil
}
