package template

import (
	"context"

	domain "laxhq/internal/domain/template"
)

// Store persists practice Template state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Template, error)
	Save(ctx context.Context, value domain.Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Template, error)
}
