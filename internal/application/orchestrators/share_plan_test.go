package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountStore "laxhq/internal/adapters/storage/account"
	"laxhq/internal/adapters/email"
	domain "laxhq/internal/domain/account"
)

// mockAccountStore implements accountStore.Store for testing.
type mockAccountStore struct {
	byID    map[string]domain.Account
	saveErr error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{byID: make(map[string]domain.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (domain.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return domain.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	for _, a := range m.byID {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, errors.New("not found")
}

func (m *mockAccountStore) Save(_ context.Context, a domain.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byID[a.ID] = a
	return nil
}

func (m *mockAccountStore) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *mockAccountStore) List(_ context.Context, filter accountStore.ListFilter) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range m.byID {
		if filter.Role != "" && a.Role != filter.Role {
			continue
		}
		if filter.TeamID != "" && a.TeamID != filter.TeamID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.byID), nil
}

// mockSender records sends without delivering.
type mockSender struct {
	sent []email.SendRequest
	err  error
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.err != nil {
		return email.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "m1", SentAt: time.Now()}, nil
}

func (m *mockSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var results []email.SendResult
	for range reqs {
		results = append(results, email.SendResult{MessageID: "m1", SentAt: time.Now()})
	}
	m.sent = append(m.sent, reqs...)
	return results, nil
}

func TestSharePlanToTeamStaff(t *testing.T) {
	planStoreMock := newMockPlanStore()
	deps := gatewayDeps(planStoreMock)
	id, err := ExecuteSavePlan(context.Background(), SavePlanInput{TeamID: "team-1", Plan: fullPlan()}, deps)
	require.NoError(t, err)

	accounts := newMockAccountStore()
	accounts.byID["a1"] = domain.Account{ID: "a1", Email: "coach@club.test", Role: domain.RoleCoach, TeamID: "team-1"}
	accounts.byID["a2"] = domain.Account{ID: "a2", Email: "director@club.test", Role: domain.RoleDirector, TeamID: "team-1"}
	accounts.byID["a3"] = domain.Account{ID: "a3", Email: "player@club.test", Role: domain.RolePlayer, TeamID: "team-1"}
	accounts.byID["a4"] = domain.Account{ID: "a4", Email: "other@club.test", Role: domain.RoleCoach, TeamID: "team-2"}

	sender := &mockSender{}
	sent, err := ExecuteSharePlan(context.Background(), SharePlanInput{PlanID: id}, SharePlanDeps{
		PlanStore:    LoadPlanDeps{PlanStore: planStoreMock, Now: deps.Now},
		AccountStore: accounts,
		Sender:       sender,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, sent, "coaches and directors on the plan's team only")
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].Subject, "Tuesday U14")
	assert.Contains(t, sender.sent[0].HTML, "3v2 Continuous")
}

func TestSharePlanExplicitRecipients(t *testing.T) {
	planStoreMock := newMockPlanStore()
	deps := gatewayDeps(planStoreMock)
	id, err := ExecuteSavePlan(context.Background(), SavePlanInput{Plan: fullPlan()}, deps)
	require.NoError(t, err)

	sender := &mockSender{}
	sent, err := ExecuteSharePlan(context.Background(), SharePlanInput{
		PlanID:     id,
		Recipients: []string{"Assistant <assistant@club.test>", "assistant@club.test", "not-an-email"},
	}, SharePlanDeps{
		PlanStore:    LoadPlanDeps{PlanStore: planStoreMock, Now: deps.Now},
		AccountStore: newMockAccountStore(),
		Sender:       sender,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, sent, "duplicates and invalid addresses dropped")
}

func TestSharePlanNoRecipients(t *testing.T) {
	planStoreMock := newMockPlanStore()
	deps := gatewayDeps(planStoreMock)
	id, err := ExecuteSavePlan(context.Background(), SavePlanInput{Plan: fullPlan()}, deps)
	require.NoError(t, err)

	_, err = ExecuteSharePlan(context.Background(), SharePlanInput{PlanID: id}, SharePlanDeps{
		PlanStore:    LoadPlanDeps{PlanStore: planStoreMock, Now: deps.Now},
		AccountStore: newMockAccountStore(),
		Sender:       &mockSender{},
	})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestSharePlanUnknownPlan(t *testing.T) {
	_, err := ExecuteSharePlan(context.Background(), SharePlanInput{PlanID: "ghost"}, SharePlanDeps{
		PlanStore:    LoadPlanDeps{PlanStore: newMockPlanStore(), Now: time.Now},
		AccountStore: newMockAccountStore(),
		Sender:       &mockSender{},
	})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
