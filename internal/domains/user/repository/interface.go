package repository

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/user/model"
)

type UserRepository interface {
	// Create persists a new user. Username and email carry UNIQUE
	// constraints; violations map to model.ErrUsernameTaken /
	// model.ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	GetByUsername(ctx context.Context, username string) (*model.User, error)

	Update(ctx context.Context, user *model.User) error
}
