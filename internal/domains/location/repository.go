package location

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, location *Location) error

	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)

	List(ctx context.Context, publishedOnly bool) ([]*Location, error)

	Update(ctx context.Context, location *Location) error

	// Delete removes the location; posts tagged with it keep existing with a
	// null location (ON DELETE SET NULL).
	Delete(ctx context.Context, id uuid.UUID) error
}
