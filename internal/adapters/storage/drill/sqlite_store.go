package drill

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"laxhq/internal/adapters/storage"
	domain "laxhq/internal/domain/drill"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new DrillStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const drillColumns = "id, title, category, description, duration_minutes, video_url, lab_urls"

// GetByID retrieves a Drill by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Drill, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+drillColumns+" FROM drill WHERE id = ?", id)
	entity, err := scanDrill(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Drill{}, fmt.Errorf("drill not found: %w", err)
	}
	return entity, err
}

// Save persists a Drill to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Drill) error {
	labURLs, err := json.Marshal(entity.LabURLs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO drill (id, title, category, description, duration_minutes, video_url, lab_urls) VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET title=excluded.title, category=excluded.category, description=excluded.description, duration_minutes=excluded.duration_minutes, video_url=excluded.video_url, lab_urls=excluded.lab_urls",
		entity.ID, entity.Title, entity.Category, entity.Description, entity.DurationMinutes, entity.VideoURL, string(labURLs),
	)
	return err
}

// Delete removes a Drill from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM drill WHERE id = ?", id)
	return err
}

// List retrieves all Drills ordered by title.
// POST: Returns the full catalog
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Drill, error) {
	return s.queryDrills(ctx, "SELECT "+drillColumns+" FROM drill ORDER BY title")
}

// ListByCategory retrieves Drills for a specific category ordered by title.
// PRE: category is non-empty
// POST: Returns drills for the given category
func (s *SQLiteStore) ListByCategory(ctx context.Context, category string) ([]domain.Drill, error) {
	return s.queryDrills(ctx, "SELECT "+drillColumns+" FROM drill WHERE category = ? ORDER BY title", category)
}

func (s *SQLiteStore) queryDrills(ctx context.Context, query string, args ...interface{}) ([]domain.Drill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Drill
	for rows.Next() {
		entity, err := scanDrill(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanDrill(scan func(...any) error) (domain.Drill, error) {
	var entity domain.Drill
	var labURLs string
	if err := scan(&entity.ID, &entity.Title, &entity.Category, &entity.Description, &entity.DurationMinutes, &entity.VideoURL, &labURLs); err != nil {
		return domain.Drill{}, err
	}
	if labURLs != "" {
		if err := json.Unmarshal([]byte(labURLs), &entity.LabURLs); err != nil {
			return domain.Drill{}, fmt.Errorf("corrupt lab_urls for drill %s: %w", entity.ID, err)
		}
	}
	return entity, nil
}
