package plan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laxhq/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PlanStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const planColumns = "id, team_id, title, practice_date, duration_minutes, notes, drill_sequence, created_at, updated_at"

// GetByID retrieves a plan record by its ID.
// PRE: id is non-empty
// POST: Returns the record or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+planColumns+" FROM practice_plan WHERE id = ?", id)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("practice plan not found: %w", err)
	}
	return rec, err
}

// Save persists a plan record (insert or update). The remote write is
// last-write-wins at the granularity of one full plan document.
// PRE: record has a non-empty ID
// POST: Record is persisted; updated_at reflects this write
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO practice_plan (id, team_id, title, practice_date, duration_minutes, notes, drill_sequence, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET team_id=excluded.team_id, title=excluded.title, practice_date=excluded.practice_date, duration_minutes=excluded.duration_minutes, notes=excluded.notes, drill_sequence=excluded.drill_sequence, updated_at=excluded.updated_at",
		rec.ID, nullable(rec.TeamID), rec.Title, rec.PracticeDate, rec.DurationMinutes, rec.Notes, string(rec.DrillSequence),
		rec.CreatedAt.UTC().Format(time.RFC3339), rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a plan record.
// PRE: id is non-empty
// POST: Record with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM practice_plan WHERE id = ?", id)
	return err
}

// ListByTeamID retrieves plan records for a team, newest practice first.
// An empty teamID lists standalone plans.
// POST: Returns matching records
func (s *SQLiteStore) ListByTeamID(ctx context.Context, teamID string) ([]Record, error) {
	query := "SELECT " + planColumns + " FROM practice_plan WHERE team_id = ? ORDER BY practice_date DESC, updated_at DESC"
	args := []any{teamID}
	if teamID == "" {
		query = "SELECT " + planColumns + " FROM practice_plan WHERE team_id IS NULL OR team_id = '' ORDER BY practice_date DESC, updated_at DESC"
		args = nil
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

func scanRecord(scan func(...any) error) (Record, error) {
	var rec Record
	var teamID sql.NullString
	var seq, createdAt, updatedAt string
	if err := scan(&rec.ID, &teamID, &rec.Title, &rec.PracticeDate, &rec.DurationMinutes, &rec.Notes, &seq, &createdAt, &updatedAt); err != nil {
		return Record{}, err
	}
	rec.TeamID = teamID.String
	rec.DrillSequence = []byte(seq)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
