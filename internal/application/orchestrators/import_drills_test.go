package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "laxhq/internal/domain/drill"
)

// mockDrillStore implements drillStore.Store for testing.
type mockDrillStore struct {
	byID    map[string]domain.Drill
	saveErr error
}

func newMockDrillStore() *mockDrillStore {
	return &mockDrillStore{byID: make(map[string]domain.Drill)}
}

func (m *mockDrillStore) GetByID(_ context.Context, id string) (domain.Drill, error) {
	d, ok := m.byID[id]
	if !ok {
		return domain.Drill{}, errors.New("not found")
	}
	return d, nil
}

func (m *mockDrillStore) Save(_ context.Context, d domain.Drill) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byID[d.ID] = d
	return nil
}

func (m *mockDrillStore) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

func (m *mockDrillStore) List(_ context.Context) ([]domain.Drill, error) {
	var out []domain.Drill
	for _, d := range m.byID {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDrillStore) ListByCategory(_ context.Context, category string) ([]domain.Drill, error) {
	var out []domain.Drill
	for _, d := range m.byID {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out, nil
}

func importDrillDeps(store *mockDrillStore) ImportDrillsDeps {
	counter := 0
	return ImportDrillsDeps{
		DrillStore: store,
		GenerateID: func() string {
			counter++
			return fmt.Sprintf("drill-%d", counter)
		},
	}
}

const drillCSV = `TITLE,CATEGORY,DESCRIPTION,DURATION,LABURLS
Star Passing,Skill Drills,stick work warmup,10,https://lab.test/star
3v2 Continuous,Transition,fast break reps,20,
,Transition,missing title,10,
Box Out,Skill Drills,ground ball fundamentals,-5,
`

func TestImportDrillsCreatesRows(t *testing.T) {
	store := newMockDrillStore()

	result, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader:         strings.NewReader(drillCSV),
		AdminAccountID: "admin-1",
	}, importDrillDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Len(t, result.Errors, 2)
	assert.Len(t, store.byID, 2)
}

func TestImportDrillsLabURLsSplit(t *testing.T) {
	store := newMockDrillStore()
	csv := "TITLE,CATEGORY,LABURLS\nStar Passing,Skill Drills,https://a.test; https://b.test\n"

	_, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{Reader: strings.NewReader(csv)}, importDrillDeps(store))
	require.NoError(t, err)

	require.Len(t, store.byID, 1)
	for _, d := range store.byID {
		assert.Equal(t, []string{"https://a.test", "https://b.test"}, d.LabURLs)
	}
}

func TestImportDrillsDryRunWritesNothing(t *testing.T) {
	store := newMockDrillStore()

	result, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader: strings.NewReader(drillCSV),
		DryRun: true,
	}, importDrillDeps(store))

	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, store.byID)
}

func TestImportDrillsSkipsExistingWithoutUpdateMode(t *testing.T) {
	store := newMockDrillStore()
	store.byID["existing"] = domain.Drill{ID: "existing", Title: "Star Passing", Category: domain.CategorySkill, DurationMinutes: 5}

	result, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader: strings.NewReader("TITLE,CATEGORY,DURATION\nStar Passing,Skill Drills,10\n"),
	}, importDrillDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 5, store.byID["existing"].DurationMinutes)
}

func TestImportDrillsUpdateModePreservesID(t *testing.T) {
	store := newMockDrillStore()
	store.byID["existing"] = domain.Drill{ID: "existing", Title: "Star Passing", Category: domain.CategorySkill, DurationMinutes: 5}

	result, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader:     strings.NewReader("TITLE,CATEGORY,DURATION\nStar Passing,Skill Drills,15\n"),
		UpdateMode: true,
	}, importDrillDeps(store))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 15, store.byID["existing"].DurationMinutes)
}

func TestImportDrillsMissingRequiredColumn(t *testing.T) {
	_, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader: strings.NewReader("NAME,CATEGORY\nStar Passing,Skill Drills\n"),
	}, importDrillDeps(newMockDrillStore()))

	var validationErr *ImportValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "TITLE")
}

func TestImportDrillsReportsUnknownColumns(t *testing.T) {
	result, err := ExecuteImportDrills(context.Background(), ImportDrillsInput{
		Reader: strings.NewReader("TITLE,CATEGORY,COACH\nStar Passing,Skill Drills,smith\n"),
	}, importDrillDeps(newMockDrillStore()))

	require.NoError(t, err)
	assert.Equal(t, []string{"COACH"}, result.Unknown)
}
