package service

import (
	"context"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment/model"
	"blogicum-backend/internal/shared/guard"
)

// CommentService implements comment creation and the author-gated mutations.
// Every method returns the guard decision alongside the result; the handler
// maps the decision onto a redirect or a denial.
type CommentService interface {
	// Create attaches a comment to a publicly visible post. A hidden or
	// scheduled target is reported as absent.
	Create(ctx context.Context, principal guard.Principal, postID uuid.UUID, form model.CommentForm) (guard.Decision, *model.CommentResponse, error)

	// GetForEdit loads a comment for the edit form, running the ownership
	// guard first.
	GetForEdit(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID) (guard.Decision, *model.CommentResponse, error)

	Update(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID, form model.CommentForm) (guard.Decision, *model.CommentResponse, error)

	Delete(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID) (guard.Decision, error)
}
