package orchestrators

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "laxhq/internal/domain/account"
)

func seedCoach(t *testing.T, store *mockAccountStore, password string) domain.Account {
	t.Helper()
	a := domain.Account{ID: "a1", Email: "coach@club.test", Role: domain.RoleCoach, TeamID: "team-1"}
	require.NoError(t, a.SetPassword(password))
	store.byID[a.ID] = a
	return a
}

func TestLoginSuccess(t *testing.T) {
	store := newMockAccountStore()
	seedCoach(t, store, "correct-horse-battery")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "coach@club.test",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})

	require.NoError(t, err)
	assert.Equal(t, "a1", result.AccountID)
	assert.Equal(t, domain.RoleCoach, result.Role)
	assert.Equal(t, "team-1", result.TeamID)
}

func TestLoginWrongPasswordRecordsFailure(t *testing.T) {
	store := newMockAccountStore()
	seedCoach(t, store, "correct-horse-battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "coach@club.test",
		Password: "wrong-password-here",
	}, LoginDeps{AccountStore: store})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, store.byID["a1"].FailedLogins)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@club.test",
		Password: "whatever-password",
	}, LoginDeps{AccountStore: newMockAccountStore()})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockedAccount(t *testing.T) {
	store := newMockAccountStore()
	a := seedCoach(t, store, "correct-horse-battery")
	a.LockedUntil = time.Now().Add(10 * time.Minute)
	store.byID[a.ID] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "coach@club.test",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})

	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	store := newMockAccountStore()
	a := seedCoach(t, store, "correct-horse-battery")
	a.FailedLogins = 3
	store.byID[a.ID] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "coach@club.test",
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})

	require.NoError(t, err)
	assert.Zero(t, store.byID["a1"].FailedLogins)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	store := newMockAccountStore()
	seedCoach(t, store, "correct-horse-battery")

	_, err := ExecuteCreateAccount(context.Background(), CreateAccountInput{
		Email:    "coach@club.test",
		Password: "another-long-password",
		Role:     domain.RoleCoach,
	}, CreateAccountDeps{AccountStore: store})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSeedAdminOnlyWhenEmpty(t *testing.T) {
	store := newMockAccountStore()

	require.NoError(t, ExecuteSeedAdmin(context.Background(), CreateAccountDeps{AccountStore: store}, "admin@club.test", "initial-admin-pass"))
	assert.Len(t, store.byID, 1)

	require.NoError(t, ExecuteSeedAdmin(context.Background(), CreateAccountDeps{AccountStore: store}, "admin@club.test", "initial-admin-pass"))
	assert.Len(t, store.byID, 1, "seeding is idempotent")
}
