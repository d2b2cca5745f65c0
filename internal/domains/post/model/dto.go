package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// PostForm is the payload for both create and edit; the author and creation
// timestamp are never client-supplied.
type PostForm struct {
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	PubDate    time.Time  `json:"pub_date"`
	CategoryID *uuid.UUID `json:"category_id"`
	LocationID *uuid.UUID `json:"location_id"`

	// IsPublished defaults to true when omitted; false keeps the post as a
	// draft visible only to its author.
	IsPublished *bool `json:"is_published"`
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 256),
		),
		validation.Field(&f.Text,
			validation.Required.Error("text is required"),
		),
		validation.Field(&f.PubDate,
			validation.Required.Error("pub_date is required; a future date schedules the post"),
		),
	)
}

// ListRequest carries the page number for listings.
type ListRequest struct {
	Page int `form:"page"`
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type PostResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Text           string     `json:"text"`
	PubDate        time.Time  `json:"pub_date"`
	ImageURL       *string    `json:"image_url,omitempty"`
	IsPublished    bool       `json:"is_published"`
	CreatedAt      time.Time  `json:"created_at"`
	AuthorUsername string     `json:"author"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	CategoryTitle  *string    `json:"category,omitempty"`
	CategorySlug   *string    `json:"category_slug,omitempty"`
	LocationName   *string    `json:"location,omitempty"`
	CommentCount   int        `json:"comment_count"`
}

func NewPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Text:           p.Text,
		PubDate:        p.PubDate,
		ImageURL:       p.ImageURL,
		IsPublished:    p.IsPublished,
		CreatedAt:      p.CreatedAt,
		AuthorUsername: p.AuthorUsername,
		CategoryID:     p.CategoryID,
		CategoryTitle:  p.CategoryTitle,
		CategorySlug:   p.CategorySlug,
		LocationName:   p.LocationName,
		CommentCount:   p.CommentCount,
	}
}

func NewPostResponses(posts []*Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// CommentEntry is a comment as rendered on the detail page, oldest first.
type CommentEntry struct {
	ID             uuid.UUID `json:"id"`
	Text           string    `json:"text"`
	AuthorUsername string    `json:"author"`
	CreatedAt      time.Time `json:"created_at"`
}

// CommentForm is the empty submission form shipped with the detail view.
type CommentForm struct {
	Text string `json:"text"`
}

// DetailResponse is the full detail-page payload: the post, the empty comment
// form and the ordered comment list with authors resolved.
type DetailResponse struct {
	Post     PostResponse   `json:"post"`
	Form     CommentForm    `json:"form"`
	Comments []CommentEntry `json:"comments"`
}

// FormMetadata lists the selectable relations for the create/edit form.
type FormMetadata struct {
	Categories []FormCategory `json:"categories"`
	Locations  []FormLocation `json:"locations"`
}

type FormCategory struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

type FormLocation struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
