package projections

import (
	"context"
	"time"

	accountStore "laxhq/internal/adapters/storage/account"
	drillStore "laxhq/internal/adapters/storage/drill"
	planStore "laxhq/internal/adapters/storage/plan"
	strategyStore "laxhq/internal/adapters/storage/strategy"
	teamStore "laxhq/internal/adapters/storage/team"
	"laxhq/internal/domain/account"
)

// GetDashboardQuery carries the viewer's identity; the dashboard shape
// depends on their role.
type GetDashboardQuery struct {
	AccountID string
}

// Dashboard holds the landing-page numbers for a logged-in account. Admin
// and director views carry club-wide totals; coach views are scoped to
// their team.
type Dashboard struct {
	Role          string
	TeamID        string
	TeamName      string
	DrillCount    int
	StrategyCount int
	PlanCount     int
	UpcomingPlans []PlanSummary
	TeamCount     int // admin and director only
	AccountCount  int // admin only
	RosterSize    int // coach only
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	AccountStore  accountStore.Store
	TeamStore     teamStore.Store
	PlanStore     planStore.Store
	DrillStore    drillStore.Store
	StrategyStore strategyStore.Store
	Now           func() time.Time
}

// QueryGetDashboard assembles the role-specific dashboard for an account.
// PRE: query.AccountID identifies an existing account
// POST: Upcoming plans hold at most five entries, soonest first
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (Dashboard, error) {
	viewer, err := deps.AccountStore.GetByID(ctx, query.AccountID)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Role: viewer.Role, TeamID: viewer.TeamID}

	drills, err := deps.DrillStore.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.DrillCount = len(drills)

	strategies, err := deps.StrategyStore.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	d.StrategyCount = len(strategies)

	if viewer.TeamID != "" {
		team, err := deps.TeamStore.GetByID(ctx, viewer.TeamID)
		if err == nil {
			d.TeamName = team.Name
		}
	}

	plans, err := QueryListPlans(ctx, ListPlansQuery{TeamID: viewer.TeamID}, ListPlansDeps{PlanStore: deps.PlanStore})
	if err != nil {
		return Dashboard{}, err
	}
	d.PlanCount = len(plans)
	d.UpcomingPlans = upcoming(plans, deps.Now().Format("2006-01-02"), 5)

	switch viewer.Role {
	case account.RoleAdmin:
		teams, err := deps.TeamStore.List(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		d.TeamCount = len(teams)
		d.AccountCount, err = deps.AccountStore.Count(ctx)
		if err != nil {
			return Dashboard{}, err
		}
	case account.RoleDirector:
		teams, err := deps.TeamStore.List(ctx)
		if err != nil {
			return Dashboard{}, err
		}
		d.TeamCount = len(teams)
	case account.RoleCoach:
		roster, err := deps.AccountStore.List(ctx, accountStore.ListFilter{Role: account.RolePlayer, TeamID: viewer.TeamID})
		if err != nil {
			return Dashboard{}, err
		}
		d.RosterSize = len(roster)
	}

	return d, nil
}

// upcoming filters plan summaries to dates on or after today, soonest first.
// QueryListPlans returns newest first, so walk it backwards.
func upcoming(plans []PlanSummary, today string, limit int) []PlanSummary {
	var out []PlanSummary
	for i := len(plans) - 1; i >= 0 && len(out) < limit; i-- {
		if plans[i].PracticeDate >= today {
			out = append(out, plans[i])
		}
	}
	return out
}
