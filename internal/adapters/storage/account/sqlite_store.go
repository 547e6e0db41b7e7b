package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"laxhq/internal/adapters/storage"
	domain "laxhq/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new AccountStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const accountColumns = "id, email, name, password_hash, role, team_id, created_at, failed_logins, locked_until, password_change_required"

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE email = ?", email)
	entity, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	return entity, err
}

// Save persists an Account to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	var lockedUntil interface{}
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO account (id, email, name, password_hash, role, team_id, created_at, failed_logins, locked_until, password_change_required) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET email=excluded.email, name=excluded.name, password_hash=excluded.password_hash, role=excluded.role, team_id=excluded.team_id, failed_logins=excluded.failed_logins, locked_until=excluded.locked_until, password_change_required=excluded.password_change_required",
		entity.ID, entity.Email, entity.Name, entity.PasswordHash, entity.Role, nullable(entity.TeamID),
		entity.CreatedAt.UTC().Format(time.RFC3339Nano), entity.FailedLogins, lockedUntil, boolToInt(entity.PasswordChangeRequired),
	)
	return err
}

// Delete removes an Account from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id)
	return err
}

// List retrieves Accounts matching the filter, ordered by email.
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Account, error) {
	query := "SELECT " + accountColumns + " FROM account"
	var conds []string
	var args []any
	if filter.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.TeamID != "" {
		conds = append(conds, "team_id = ?")
		args = append(args, filter.TeamID)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY email"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Account
	for rows.Next() {
		entity, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of accounts.
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account")
	var n int
	err := row.Scan(&n)
	return n, err
}

func scanAccount(scan func(...any) error) (domain.Account, error) {
	var entity domain.Account
	var teamID, lockedUntil sql.NullString
	var createdAt string
	var changeRequired int
	if err := scan(&entity.ID, &entity.Email, &entity.Name, &entity.PasswordHash, &entity.Role, &teamID, &createdAt, &entity.FailedLogins, &lockedUntil, &changeRequired); err != nil {
		return domain.Account{}, err
	}
	entity.TeamID = teamID.String
	entity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if lockedUntil.Valid {
		entity.LockedUntil, _ = time.Parse(time.RFC3339Nano, lockedUntil.String)
	}
	entity.PasswordChangeRequired = changeRequired != 0
	return entity, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
