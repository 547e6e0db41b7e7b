package team

import (
	"context"

	domain "laxhq/internal/domain/team"
)

// Store persists Team state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Team, error)
	Save(ctx context.Context, value domain.Team) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Team, error)
}
