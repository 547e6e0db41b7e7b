package strategy

import (
	"context"

	domain "laxhq/internal/domain/strategy"
)

// Store persists Strategy catalog state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Strategy, error)
	Save(ctx context.Context, value domain.Strategy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Strategy, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Strategy, error)
}
