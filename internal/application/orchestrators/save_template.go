package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	templateStore "laxhq/internal/adapters/storage/template"
	"laxhq/internal/domain/plan"
	"laxhq/internal/domain/template"
)

var ErrEmptyTemplate = errors.New("cannot save a template with no drills")

// SaveTemplateInput carries input for the save-template orchestrator.
type SaveTemplateInput struct {
	Name        string
	Description string
	AgeGroup    string
	AccountID   string
	Official    bool
	Plan        plan.Plan
}

// SaveTemplateDeps holds dependencies for SaveTemplate.
type SaveTemplateDeps struct {
	TemplateStore templateStore.Store
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSaveTemplate captures the current editor timeline as a reusable
// template. Only the timeline, allotted duration and notes are kept; dates,
// goals and strategies stay with the plan.
// PRE: The plan holds at least one slot
// POST: Template validates and is persisted with a fresh ID
func ExecuteSaveTemplate(ctx context.Context, input SaveTemplateInput, deps SaveTemplateDeps) (string, error) {
	if len(input.Plan.TimeSlots) == 0 {
		return "", ErrEmptyTemplate
	}

	ageGroup := input.AgeGroup
	if ageGroup == "" {
		ageGroup = template.AgeGroupAll
	}

	t := template.Template{
		ID:              deps.GenerateID(),
		Name:            input.Name,
		Description:     input.Description,
		AgeGroup:        ageGroup,
		DurationMinutes: input.Plan.Info.DurationMinutes,
		TimeSlots:       input.Plan.TimeSlots,
		Notes:           input.Plan.PracticeNotes,
		Official:        input.Official,
		CreatedBy:       input.AccountID,
		CreatedAt:       deps.Now(),
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	if err := deps.TemplateStore.Save(ctx, t); err != nil {
		return "", err
	}

	slog.Info("plan_event", "event", "template_saved", "template_id", t.ID, "name", t.Name, "account_id", input.AccountID)
	return t.ID, nil
}
