package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"laxhq/internal/adapters/storage"
	planDomain "laxhq/internal/domain/plan"
	domain "laxhq/internal/domain/template"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TemplateStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const templateColumns = "id, name, description, age_group, duration_minutes, time_slots, notes, official, created_by, created_at"

// GetByID retrieves a Template by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Template, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+templateColumns+" FROM practice_template WHERE id = ?", id)
	entity, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Template{}, fmt.Errorf("template not found: %w", err)
	}
	return entity, err
}

// Save persists a Template to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Template) error {
	slots, err := json.Marshal(entity.TimeSlots)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO practice_template (id, name, description, age_group, duration_minutes, time_slots, notes, official, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, description=excluded.description, age_group=excluded.age_group, duration_minutes=excluded.duration_minutes, time_slots=excluded.time_slots, notes=excluded.notes, official=excluded.official",
		entity.ID, entity.Name, entity.Description, entity.AgeGroup, entity.DurationMinutes, string(slots), entity.Notes,
		boolToInt(entity.Official), entity.CreatedBy, entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a Template from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM practice_template WHERE id = ?", id)
	return err
}

// List retrieves all Templates, official first, then by name.
// POST: Returns all templates
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+templateColumns+" FROM practice_template ORDER BY official DESC, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Template
	for rows.Next() {
		entity, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanTemplate(scan func(...any) error) (domain.Template, error) {
	var entity domain.Template
	var slots, createdAt string
	var official int
	if err := scan(&entity.ID, &entity.Name, &entity.Description, &entity.AgeGroup, &entity.DurationMinutes, &slots, &entity.Notes, &official, &entity.CreatedBy, &createdAt); err != nil {
		return domain.Template{}, err
	}
	if slots != "" {
		var timeSlots []planDomain.TimeSlot
		if err := json.Unmarshal([]byte(slots), &timeSlots); err != nil {
			return domain.Template{}, fmt.Errorf("corrupt time_slots for template %s: %w", entity.ID, err)
		}
		entity.TimeSlots = timeSlots
	}
	entity.Official = official != 0
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
