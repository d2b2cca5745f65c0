package category

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)

	// GetPublishedBySlug backs the public /category/{slug} route; unpublished
	// categories are indistinguishable from absent ones.
	GetPublishedBySlug(ctx context.Context, slug string) (*Category, error)

	List(ctx context.Context, publishedOnly bool) ([]CategoryResponse, error)

	Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
