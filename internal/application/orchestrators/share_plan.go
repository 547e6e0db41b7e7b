package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	accountStore "laxhq/internal/adapters/storage/account"
	"laxhq/internal/adapters/email"
	"laxhq/internal/domain/account"
)

// Share errors
var (
	ErrNoRecipients = errors.New("no recipients to share the plan with")
)

// SharePlanInput carries input for the share orchestrator. Recipients is an
// optional explicit address list; when empty the plan goes to every coach
// and director attached to the plan's team.
type SharePlanInput struct {
	PlanID     string
	AccountID  string
	Recipients []string
	Message    string
}

// SharePlanDeps holds dependencies for SharePlan.
type SharePlanDeps struct {
	PlanStore    LoadPlanDeps
	AccountStore accountStore.Store
	Sender       email.Sender
}

// ExecuteSharePlan emails the printable rendering of a plan to team staff or
// an explicit recipient list.
// PRE: The plan exists; deps.Sender is non-nil
// POST: One email per recipient; returns the number of sends accepted
func ExecuteSharePlan(ctx context.Context, input SharePlanInput, deps SharePlanDeps) (int, error) {
	loaded, err := ExecuteLoadPlan(ctx, LoadPlanInput{PlanID: input.PlanID}, deps.PlanStore)
	if err != nil {
		return 0, err
	}

	recipients, err := resolveRecipients(ctx, input.Recipients, loaded.TeamID, deps.AccountStore)
	if err != nil {
		return 0, err
	}

	html, err := RenderPlanHTML(loaded.Plan)
	if err != nil {
		return 0, err
	}
	if input.Message != "" {
		html = "<p>" + input.Message + "</p>\n" + html
	}

	subject := "Practice plan: " + loaded.Plan.Info.Name
	if loaded.Plan.Info.Date != "" {
		subject += " (" + loaded.Plan.Info.Date + ")"
	}

	reqs := make([]email.SendRequest, 0, len(recipients))
	for _, to := range recipients {
		reqs = append(reqs, email.SendRequest{To: []string{to}, Subject: subject, HTML: html})
	}

	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err != nil {
		slog.Error("plan_event", "event", "share_failed", "plan_id", input.PlanID, "error", err)
		return len(results), err
	}

	slog.Info("plan_event", "event", "plan_shared", "plan_id", input.PlanID, "account_id", input.AccountID, "recipients", len(results))
	return len(results), nil
}

func resolveRecipients(ctx context.Context, explicit []string, teamID string, accounts accountStore.Store) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(raw string) {
		addr, err := mail.ParseAddress(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		lower := strings.ToLower(addr.Address)
		if !seen[lower] {
			seen[lower] = true
			out = append(out, lower)
		}
	}

	for _, r := range explicit {
		add(r)
	}
	if len(explicit) == 0 && teamID != "" {
		staff, err := accounts.List(ctx, accountStore.ListFilter{TeamID: teamID})
		if err != nil {
			return nil, err
		}
		for _, a := range staff {
			if a.Role == account.RoleCoach || a.Role == account.RoleDirector {
				add(a.Email)
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoRecipients
	}
	return out, nil
}
