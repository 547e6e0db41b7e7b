package team

import (
	"context"
	"database/sql"
	"fmt"

	"laxhq/internal/adapters/storage"
	domain "laxhq/internal/domain/team"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TeamStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Team by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Team, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, age_group FROM team WHERE id = ?", id)
	var entity domain.Team
	err := row.Scan(&entity.ID, &entity.Name, &entity.AgeGroup)
	if err == sql.ErrNoRows {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	return entity, err
}

// Save persists a Team to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Team) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO team (id, name, age_group) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, age_group=excluded.age_group",
		entity.ID, entity.Name, entity.AgeGroup,
	)
	return err
}

// Delete removes a Team from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM team WHERE id = ?", id)
	return err
}

// List retrieves all Teams ordered by name.
// POST: Returns all teams
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, age_group FROM team ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Team
	for rows.Next() {
		var entity domain.Team
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.AgeGroup); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
