package strategy

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"laxhq/internal/adapters/storage"
	domain "laxhq/internal/domain/strategy"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new StrategyStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const strategyColumns = "id, name, category, description, video_url, lab_urls"

// GetByID retrieves a Strategy by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Strategy, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+strategyColumns+" FROM strategy WHERE id = ?", id)
	entity, err := scanStrategy(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Strategy{}, fmt.Errorf("strategy not found: %w", err)
	}
	return entity, err
}

// Save persists a Strategy to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Strategy) error {
	labURLs, err := json.Marshal(entity.LabURLs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO strategy (id, name, category, description, video_url, lab_urls) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, category=excluded.category, description=excluded.description, video_url=excluded.video_url, lab_urls=excluded.lab_urls",
		entity.ID, entity.Name, entity.Category, entity.Description, entity.VideoURL, string(labURLs),
	)
	return err
}

// Delete removes a Strategy from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM strategy WHERE id = ?", id)
	return err
}

// List retrieves all Strategies ordered by name.
// POST: Returns the full catalog
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Strategy, error) {
	return s.queryStrategies(ctx, "SELECT "+strategyColumns+" FROM strategy ORDER BY name")
}

// ListByCategory retrieves Strategies for a specific game phase ordered by name.
// PRE: category is non-empty
// POST: Returns strategies for the given category
func (s *SQLiteStore) ListByCategory(ctx context.Context, category string) ([]domain.Strategy, error) {
	return s.queryStrategies(ctx, "SELECT "+strategyColumns+" FROM strategy WHERE category = ? ORDER BY name", category)
}

func (s *SQLiteStore) queryStrategies(ctx context.Context, query string, args ...interface{}) ([]domain.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Strategy
	for rows.Next() {
		entity, err := scanStrategy(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanStrategy(scan func(...any) error) (domain.Strategy, error) {
	var entity domain.Strategy
	var labURLs string
	if err := scan(&entity.ID, &entity.Name, &entity.Category, &entity.Description, &entity.VideoURL, &labURLs); err != nil {
		return domain.Strategy{}, err
	}
	if labURLs != "" {
		if err := json.Unmarshal([]byte(labURLs), &entity.LabURLs); err != nil {
			return domain.Strategy{}, fmt.Errorf("corrupt lab_urls for strategy %s: %w", entity.ID, err)
		}
	}
	return entity, nil
}
