package repository

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// GetByID resolves one comment with its author joined.
	// Returns model.ErrCommentNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	Update(ctx context.Context, comment *model.Comment) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ListForPost returns every comment under a post, oldest first.
	ListForPost(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
}
