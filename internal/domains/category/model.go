package category

import (
	"github.com/google/uuid"

	"blogicum-backend/internal/shared"
)

// Category groups posts under a unique URL slug. An unpublished category
// hides every post in it from public listings, whatever the post-level flags
// say.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	shared.Publication
}
