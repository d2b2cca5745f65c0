package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"blogicum-backend/internal/domains/category"
	commentrepo "blogicum-backend/internal/domains/comment/repository"
	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/shared"
	"blogicum-backend/internal/shared/guard"
	"blogicum-backend/internal/shared/pagination"
)

// TaskEnqueuer is the slice of asynq.Client the service needs, kept as an
// interface so tests can capture enqueued tasks.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type postService struct {
	postRepo     repository.PostRepository
	commentRepo  commentrepo.CommentRepository
	categoryRepo category.Repository
	locationRepo location.Repository
	tasks        TaskEnqueuer
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo commentrepo.CommentRepository,
	categoryRepo category.Repository,
	locationRepo location.Repository,
	tasks TaskEnqueuer,
) PostService {
	return &postService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		tasks:        tasks,
	}
}

// =====================================================
// LISTINGS
// =====================================================

func (s *postService) ListHome(ctx context.Context, page int) ([]model.PostResponse, pagination.Page, error) {
	opts := repository.ListOptions{Filters: true, Annotations: true}
	return s.listPage(ctx, opts, page)
}

func (s *postService) ListForCategory(ctx context.Context, categoryID uuid.UUID, page int) ([]model.PostResponse, pagination.Page, error) {
	// The category itself was gated by the caller, so only the post-level
	// checks apply here.
	opts := repository.ListOptions{
		Annotations:   true,
		PublishedOnly: true,
		CategoryID:    &categoryID,
	}
	return s.listPage(ctx, opts, page)
}

func (s *postService) ListForAuthor(ctx context.Context, authorID uuid.UUID, includeHidden bool, page int) ([]model.PostResponse, pagination.Page, error) {
	opts := repository.ListOptions{
		Filters:     !includeHidden,
		Annotations: true,
		AuthorID:    &authorID,
	}
	return s.listPage(ctx, opts, page)
}

func (s *postService) listPage(ctx context.Context, opts repository.ListOptions, page int) ([]model.PostResponse, pagination.Page, error) {
	total, err := s.postRepo.Count(ctx, opts)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	pg := pagination.New(page, total)
	opts.Limit = pg.Limit()
	opts.Offset = pg.Offset()

	posts, err := s.postRepo.List(ctx, opts)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	return model.NewPostResponses(posts), pg, nil
}

// =====================================================
// DETAIL
// =====================================================

func (s *postService) GetDetail(ctx context.Context, principal guard.Principal, id uuid.UUID) (*model.DetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Non-authors only get to see publicly visible posts; a hidden post is
	// reported as absent rather than as denied.
	if !guard.IsOwner(principal, post.AuthorID) && !post.IsVisibleAt(time.Now()) {
		return nil, model.ErrPostNotFound
	}

	comments, err := s.commentRepo.ListForPost(ctx, id)
	if err != nil {
		return nil, err
	}

	entries := make([]model.CommentEntry, 0, len(comments))
	for _, c := range comments {
		entries = append(entries, model.CommentEntry{
			ID:             c.ID,
			Text:           c.Text,
			AuthorUsername: c.AuthorUsername,
			CreatedAt:      c.CreatedAt,
		})
	}

	return &model.DetailResponse{
		Post:     model.NewPostResponse(post),
		Form:     model.CommentForm{},
		Comments: entries,
	}, nil
}

func (s *postService) FormMetadata(ctx context.Context) (*model.FormMetadata, error) {
	cats, err := s.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	locs, err := s.locationRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	meta := &model.FormMetadata{
		Categories: make([]model.FormCategory, 0, len(cats)),
		Locations:  make([]model.FormLocation, 0, len(locs)),
	}
	for _, c := range cats {
		meta.Categories = append(meta.Categories, model.FormCategory{ID: c.ID, Title: c.Title, Slug: c.Slug})
	}
	for _, l := range locs {
		meta.Locations = append(meta.Locations, model.FormLocation{ID: l.ID, Name: l.Name})
	}
	return meta, nil
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, form model.PostForm) (*model.PostResponse, error) {
	if err := s.checkRelations(ctx, form); err != nil {
		return nil, err
	}

	published := true
	if form.IsPublished != nil {
		published = *form.IsPublished
	}

	post := &model.Post{
		ID:         uuid.New(),
		Title:      form.Title,
		Text:       form.Text,
		PubDate:    form.PubDate,
		AuthorID:   authorID,
		CategoryID: form.CategoryID,
		LocationID: form.LocationID,
	}
	post.IsPublished = published
	post.CreatedAt = time.Now().UTC()

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Re-read to resolve the joined author/category/location fields.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	resp := model.NewPostResponse(created)
	return &resp, nil
}

// mutationGuard runs the access check for post mutations. A post the
// principal may not see reads as absent, exactly like the detail view; only
// then does the ownership redirect apply.
func mutationGuard(principal guard.Principal, post *model.Post) (guard.Decision, error) {
	if !guard.IsOwner(principal, post.AuthorID) && !post.IsVisibleAt(time.Now()) {
		return guard.RedirectSafe, model.ErrPostNotFound
	}
	return guard.PostMutation(principal, post.AuthorID), nil
}

func (s *postService) GetForMutation(ctx context.Context, principal guard.Principal, id uuid.UUID) (guard.Decision, *model.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return guard.RedirectSafe, nil, err
	}

	decision, err := mutationGuard(principal, post)
	if err != nil || decision != guard.Allowed {
		return decision, nil, err
	}

	resp := model.NewPostResponse(post)
	return guard.Allowed, &resp, nil
}

func (s *postService) Update(ctx context.Context, principal guard.Principal, id uuid.UUID, form model.PostForm) (guard.Decision, *model.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return guard.RedirectSafe, nil, err
	}

	decision, err := mutationGuard(principal, post)
	if err != nil || decision != guard.Allowed {
		return decision, nil, err
	}

	if err := s.checkRelations(ctx, form); err != nil {
		return guard.Allowed, nil, err
	}

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDate
	post.CategoryID = form.CategoryID
	post.LocationID = form.LocationID
	if form.IsPublished != nil {
		post.IsPublished = *form.IsPublished
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return guard.Allowed, nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return guard.Allowed, nil, err
	}

	resp := model.NewPostResponse(updated)
	return guard.Allowed, &resp, nil
}

func (s *postService) Delete(ctx context.Context, principal guard.Principal, id uuid.UUID) (guard.Decision, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return guard.RedirectSafe, err
	}

	decision, err := mutationGuard(principal, post)
	if err != nil || decision != guard.Allowed {
		return decision, err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return guard.Allowed, err
	}

	if post.ImageURL != nil {
		s.enqueueImageCleanup(ctx, id)
	}

	return guard.Allowed, nil
}

// enqueueImageCleanup hands the stored images of a deleted post to the
// worker. Failures are logged, not surfaced: the post is already gone.
func (s *postService) enqueueImageCleanup(ctx context.Context, postID uuid.UUID) {
	payload, err := json.Marshal(shared.DeletePostImagesPayload{PostID: postID.String()})
	if err != nil {
		log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to marshal image cleanup payload")
		return
	}

	task := asynq.NewTask(shared.TypeDeletePostImages, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueImages)); err != nil {
		log.Error().Err(err).Str("post_id", postID.String()).Msg("failed to enqueue image cleanup")
	}
}

func (s *postService) checkRelations(ctx context.Context, form model.PostForm) error {
	if form.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *form.CategoryID); err != nil {
			return model.ErrCategoryGone
		}
	}
	if form.LocationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *form.LocationID); err != nil {
			return model.ErrLocationGone
		}
	}
	return nil
}

// =====================================================
// EXPORT
// =====================================================

const exportSheet = "Posts"

// Export writes the author's full post list, hidden posts included, into a
// spreadsheet.
func (s *postService) Export(ctx context.Context, authorID uuid.UUID) (*excelize.File, error) {
	posts, err := s.postRepo.List(ctx, repository.ListOptions{
		Annotations: true,
		AuthorID:    &authorID,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"ID", "Title", "Publication date", "Published", "Category", "Location", "Comments"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, p := range posts {
		categoryTitle := ""
		if p.CategoryTitle != nil {
			categoryTitle = *p.CategoryTitle
		}
		locationName := ""
		if p.LocationName != nil {
			locationName = *p.LocationName
		}

		values := []interface{}{
			p.ID.String(),
			p.Title,
			p.PubDate.Format(time.RFC3339),
			p.IsPublished,
			categoryTitle,
			locationName,
			p.CommentCount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	return f, nil
}
