package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to exactly one post and one author. Comments live and die
// with their post; deleting the post cascades.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Resolved relation
	AuthorUsername string `json:"author"`
}
