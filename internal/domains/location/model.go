package location

import (
	"github.com/google/uuid"

	"blogicum-backend/internal/shared"
)

// Location is an optional place tag on a post. Unlike categories, an
// unpublished location does not hide its posts; it merely disappears from
// the create/edit form.
type Location struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	shared.Publication
}
