package category

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// CreateCategoryRequest creates a category; the slug is derived from the
// title when omitted.
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 256),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.Slug,
			validation.When(r.Slug != "",
				validation.Match(slugPattern).Error("slug may contain latin letters, digits, hyphen and underscore"),
			),
		),
	)
}

// UpdateCategoryRequest updates title/description/visibility. The slug is
// immutable once assigned; it is a public URL.
type UpdateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"is_published"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 256)),
		),
	)
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
	}
}
