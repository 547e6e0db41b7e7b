package orchestrators

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "laxhq/internal/domain/account"
)

func importUserDeps(store *mockAccountStore) ImportUsersDeps {
	counter := 0
	return ImportUsersDeps{
		AccountStore: store,
		GenerateID: func() string {
			counter++
			return fmt.Sprintf("acct-%d", counter)
		},
	}
}

const userCSV = `NAME,EMAIL,ROLE,TEAMID
Pat Coach,pat@example.com,coach,team-1
Dee Rector,dee@example.com,director,
Kid Player,not-an-email,player,team-1
,missing@example.com,player,team-1
`

func TestImportUsersCreatesAccounts(t *testing.T) {
	store := newMockAccountStore()

	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader(userCSV),
		AdminAccountID:  "admin-1",
		DefaultPassword: "week one welcome",
	}, importUserDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.Errors, 2)
	require.Len(t, store.byID, 2)

	created, err := store.GetByEmail(context.Background(), "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoach, created.Role)
	assert.Equal(t, "team-1", created.TeamID)
	assert.True(t, created.PasswordChangeRequired, "imported accounts must change the default password")
	assert.NotEmpty(t, created.PasswordHash)
}

func TestImportUsersDryRunWritesNothing(t *testing.T) {
	store := newMockAccountStore()

	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader(userCSV),
		DefaultPassword: "week one welcome",
		DryRun:          true,
	}, importUserDeps(store))

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, store.byID)
}

func TestImportUsersSkipsExistingWithoutUpdateMode(t *testing.T) {
	store := newMockAccountStore()
	store.byID["existing"] = domain.Account{ID: "existing", Email: "pat@example.com", Name: "Old Name", Role: domain.RolePlayer}

	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader("NAME,EMAIL,ROLE\nPat Coach,pat@example.com,coach\n"),
		DefaultPassword: "week one welcome",
	}, importUserDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Old Name", store.byID["existing"].Name)
}

func TestImportUsersUpdateModePreservesIDAndPassword(t *testing.T) {
	store := newMockAccountStore()
	existing := domain.Account{ID: "existing", Email: "pat@example.com", Name: "Old Name", Role: domain.RolePlayer, CreatedAt: time.Now()}
	require.NoError(t, existing.SetPassword("their chosen password"))
	store.byID["existing"] = existing

	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader("NAME,EMAIL,ROLE,TEAMID\nPat Coach,pat@example.com,coach,team-2\n"),
		DefaultPassword: "week one welcome",
		UpdateMode:      true,
	}, importUserDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	updated := store.byID["existing"]
	assert.Equal(t, "Pat Coach", updated.Name)
	assert.Equal(t, domain.RoleCoach, updated.Role)
	assert.Equal(t, "team-2", updated.TeamID)
	assert.Equal(t, existing.PasswordHash, updated.PasswordHash, "updates must not touch the password")
}

func TestImportUsersInvalidRoleDefaultsToPlayer(t *testing.T) {
	store := newMockAccountStore()

	_, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader("NAME,EMAIL,ROLE\nKid,kid@example.com,goalkeeper\n"),
		DefaultPassword: "week one welcome",
	}, importUserDeps(store))
	require.NoError(t, err)

	created, err := store.GetByEmail(context.Background(), "kid@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePlayer, created.Role)
}

func TestImportUsersRejectedDefaultPassword(t *testing.T) {
	store := newMockAccountStore()

	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader("NAME,EMAIL\nPat,pat@example.com\n"),
		DefaultPassword: "too short",
	}, importUserDeps(store))

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "default password rejected")
	assert.Empty(t, store.byID)
}

func TestImportUsersMissingRequiredColumn(t *testing.T) {
	_, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader: strings.NewReader("NAME,ROLE\nPat,coach\n"),
	}, importUserDeps(newMockAccountStore()))

	var validationErr *ImportValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "EMAIL")
}

func TestImportUsersReportsUnknownColumns(t *testing.T) {
	result, err := ExecuteImportUsers(context.Background(), ImportUsersInput{
		Reader:          strings.NewReader("NAME,EMAIL,JERSEY\nPat,pat@example.com,13\n"),
		DefaultPassword: "week one welcome",
	}, importUserDeps(newMockAccountStore()))

	require.NoError(t, err)
	assert.Equal(t, []string{"JERSEY"}, result.Unknown)
}
