package location

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Name        string `json:"name"`
	IsPublished *bool  `json:"is_published"`
}

func (r CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 256),
		),
	)
}

type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	IsPublished *bool   `json:"is_published"`
}

func (r UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.Length(1, 256)),
		),
	)
}

type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewLocationResponse(l *Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		IsPublished: l.IsPublished,
		CreatedAt:   l.CreatedAt,
	}
}
