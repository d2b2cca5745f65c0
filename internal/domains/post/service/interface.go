package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/guard"
	"blogicum-backend/internal/shared/pagination"
)

// PostService implements the reading and writing of posts. Listings come
// back already paginated; mutations come back with the guard decision so
// the handler can translate it into the right HTTP outcome.
type PostService interface {
	// ListHome returns the public feed: visible posts, newest first.
	ListHome(ctx context.Context, page int) ([]model.PostResponse, pagination.Page, error)

	// ListForCategory returns the visible posts of one category. The caller
	// is expected to have resolved (and gated) the category itself.
	ListForCategory(ctx context.Context, categoryID uuid.UUID, page int) ([]model.PostResponse, pagination.Page, error)

	// ListForAuthor returns one author's posts. With includeHidden the
	// drafts and scheduled posts are part of the set; that mode is reserved
	// for the author viewing their own profile.
	ListForAuthor(ctx context.Context, authorID uuid.UUID, includeHidden bool, page int) ([]model.PostResponse, pagination.Page, error)

	// GetDetail returns the detail-page payload. A post the principal may
	// not see is reported as model.ErrPostNotFound, never as a denial.
	GetDetail(ctx context.Context, principal guard.Principal, id uuid.UUID) (*model.DetailResponse, error)

	// FormMetadata lists the published categories and locations selectable
	// on the create/edit form.
	FormMetadata(ctx context.Context) (*model.FormMetadata, error)

	Create(ctx context.Context, authorID uuid.UUID, form model.PostForm) (*model.PostResponse, error)

	// GetForMutation loads a post for the edit/delete confirmation views,
	// running the ownership guard first.
	GetForMutation(ctx context.Context, principal guard.Principal, id uuid.UUID) (guard.Decision, *model.PostResponse, error)

	Update(ctx context.Context, principal guard.Principal, id uuid.UUID, form model.PostForm) (guard.Decision, *model.PostResponse, error)

	Delete(ctx context.Context, principal guard.Principal, id uuid.UUID) (guard.Decision, error)

	// Export builds a spreadsheet of every post the author has written,
	// drafts included.
	Export(ctx context.Context, authorID uuid.UUID) (*excelize.File, error)
}

// ImageService handles the post image lifecycle: synchronous upload of the
// original, asynchronous resizing and cleanup through the worker.
type ImageService interface {
	// Upload stores the original image for a post (owner only) and enqueues
	// the resize job. Returns the public URL of the stored original.
	Upload(ctx context.Context, principal guard.Principal, postID uuid.UUID, data []byte) (guard.Decision, string, error)

	// ProcessImage builds the resized variants for a post's image. Runs on
	// the worker.
	ProcessImage(ctx context.Context, postID uuid.UUID) error

	// CleanupImages removes every stored object for a deleted post. Runs on
	// the worker.
	CleanupImages(ctx context.Context, postID uuid.UUID) error
}
