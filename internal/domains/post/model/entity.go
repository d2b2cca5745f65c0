package model

import (
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/shared"
)

// Post is a blog publication.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	PubDate    time.Time  `json:"pub_date"`
	ImageURL   *string    `json:"image_url"`
	AuthorID   uuid.UUID  `json:"author_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	LocationID *uuid.UUID `json:"location_id"`
	shared.Publication

	// Resolved relations (populated by repository joins)
	AuthorUsername    string  `json:"author_username"`
	CategoryTitle     *string `json:"category_title"`
	CategorySlug      *string `json:"category_slug"`
	CategoryPublished *bool   `json:"-"`
	LocationName      *string `json:"location_name"`

	// CommentCount is a read-time annotation, not a stored column.
	CommentCount int `json:"comment_count"`
}

// IsVisibleAt reports whether the post is publicly visible at the given
// moment: published, pub date not in the future, and its category (if any)
// itself published. An unpublished category hides all of its posts no matter
// what the post-level flag says.
func (p *Post) IsVisibleAt(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.CategoryPublished == nil || !*p.CategoryPublished) {
		return false
	}
	return true
}
