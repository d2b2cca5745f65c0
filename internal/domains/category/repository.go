package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error

	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// GetBySlug resolves a category by its slug. With publishedOnly the
	// lookup treats unpublished categories as absent, which is what every
	// public route wants.
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*Category, error)

	List(ctx context.Context, publishedOnly bool) ([]*Category, error)

	Update(ctx context.Context, category *Category) error

	// Delete removes the category; posts referencing it keep existing with a
	// null category (ON DELETE SET NULL).
	Delete(ctx context.Context, id uuid.UUID) error
}
