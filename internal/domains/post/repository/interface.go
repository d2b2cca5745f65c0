package repository

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/post/model"
)

// ListOptions shapes a post listing query. Filters and Annotations are
// independent toggles:
//
//   - Filters restricts the set to publicly visible posts (published, past
//     pub date, category published or absent).
//   - Annotations attaches the comment_count to each row and pins the
//     pub_date-descending order with a stable tiebreak.
//
// Contexts that must show an author's drafts and scheduled posts (profile,
// the author's own listing) run with Filters off.
type ListOptions struct {
	Filters     bool
	Annotations bool

	// Optional narrowing
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID

	// PublishedOnly applies only the post-level checks (flag + past pub
	// date) without the category clause; the category listing uses it after
	// having verified the category itself.
	PublishedOnly bool

	// Limit <= 0 means no limit.
	Limit  int
	Offset int
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error

	// GetByID resolves one post with author, category and location joined and
	// the comment count annotated. Returns model.ErrPostNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	Update(ctx context.Context, post *model.Post) error

	// Delete removes the post; its comments go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, opts ListOptions) ([]*model.Post, error)

	// Count returns the size of the set List would produce, ignoring
	// Limit/Offset. Used to compute pages before fetching one.
	Count(ctx context.Context, opts ListOptions) (int, error)

	SetImageURL(ctx context.Context, id uuid.UUID, url string) error
}
