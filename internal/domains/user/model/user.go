package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an author identity. Posts and comments hang off it; deleting a
// user is not part of this application's surface.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
}
