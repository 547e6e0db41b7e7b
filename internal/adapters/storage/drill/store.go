package drill

import (
	"context"

	domain "laxhq/internal/domain/drill"
)

// Store persists Drill catalog state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Drill, error)
	Save(ctx context.Context, value domain.Drill) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Drill, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Drill, error)
}
