package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment/model"
	"blogicum-backend/internal/domains/comment/repository"
	postModel "blogicum-backend/internal/domains/post/model"
	postRepo "blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/shared/guard"
)

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    postRepo.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, posts postRepo.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    posts,
	}
}

func (s *commentService) Create(ctx context.Context, principal guard.Principal, postID uuid.UUID, form model.CommentForm) (guard.Decision, *model.CommentResponse, error) {
	if !guard.IsAuthenticated(principal) {
		return guard.RedirectLogin, nil, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return guard.Allowed, nil, err
	}
	// Only publicly visible posts accept comments; the author's own drafts
	// and scheduled posts do not.
	if !post.IsVisibleAt(time.Now()) {
		return guard.Allowed, nil, postModel.ErrPostNotFound
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		Text:      form.Text,
		PostID:    postID,
		AuthorID:  principal.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return guard.Allowed, nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return guard.Allowed, nil, err
	}

	resp := model.NewCommentResponse(created)
	return guard.Allowed, &resp, nil
}

func (s *commentService) GetForEdit(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID) (guard.Decision, *model.CommentResponse, error) {
	decision, comment, err := s.resolve(ctx, principal, postID, commentID)
	if decision != guard.Allowed || err != nil {
		return decision, nil, err
	}

	resp := model.NewCommentResponse(comment)
	return guard.Allowed, &resp, nil
}

func (s *commentService) Update(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID, form model.CommentForm) (guard.Decision, *model.CommentResponse, error) {
	decision, comment, err := s.resolve(ctx, principal, postID, commentID)
	if decision != guard.Allowed || err != nil {
		return decision, nil, err
	}

	comment.Text = form.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return guard.Allowed, nil, err
	}

	resp := model.NewCommentResponse(comment)
	return guard.Allowed, &resp, nil
}

func (s *commentService) Delete(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID) (guard.Decision, error) {
	decision, comment, err := s.resolve(ctx, principal, postID, commentID)
	if decision != guard.Allowed || err != nil {
		return decision, err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return guard.Allowed, err
	}

	return guard.Allowed, nil
}

// resolve fetches the comment, checks it belongs to the post named in the
// URL, and runs the ownership guard.
func (s *commentService) resolve(ctx context.Context, principal guard.Principal, postID, commentID uuid.UUID) (guard.Decision, *model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return guard.Allowed, nil, err
	}
	if comment.PostID != postID {
		return guard.Allowed, nil, model.ErrCommentNotFound
	}

	if decision := guard.CommentMutation(principal, comment.AuthorID); decision != guard.Allowed {
		return decision, nil, nil
	}

	return guard.Allowed, comment, nil
}
