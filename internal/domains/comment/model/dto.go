package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CommentForm is the payload for creating or editing a comment. The author
// and post references are taken from the request context, never the body.
type CommentForm struct {
	Text string `json:"text"`
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 4000),
		),
	)
}

type CommentResponse struct {
	ID             uuid.UUID `json:"id"`
	PostID         uuid.UUID `json:"post_id"`
	Text           string    `json:"text"`
	AuthorUsername string    `json:"author"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:             c.ID,
		PostID:         c.PostID,
		Text:           c.Text,
		AuthorUsername: c.AuthorUsername,
		CreatedAt:      c.CreatedAt,
	}
}
