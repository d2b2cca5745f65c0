package service

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/user/model"
)

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)

	// Login verifies credentials and issues a JWT pair. A missing user and
	// a wrong password are reported identically.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	GetByUsername(ctx context.Context, username string) (*model.UserResponse, error)

	// UpdateProfile edits the requester's own identity fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserResponse, error)
}
