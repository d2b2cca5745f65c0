package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/internal/shared"
	"blogicum-backend/internal/shared/guard"
)

type imageService struct {
	postRepo  repository.PostRepository
	storage   storage.ObjectStorage
	processor *storage.ImageProcessor
	tasks     TaskEnqueuer
}

func NewImageService(
	postRepo repository.PostRepository,
	objectStorage storage.ObjectStorage,
	processor *storage.ImageProcessor,
	tasks TaskEnqueuer,
) ImageService {
	return &imageService{
		postRepo:  postRepo,
		storage:   objectStorage,
		processor: processor,
		tasks:     tasks,
	}
}

func originalKey(postID uuid.UUID) string {
	return fmt.Sprintf("posts/%s/original", postID)
}

func variantKey(postID uuid.UUID, name string) string {
	return fmt.Sprintf("posts/%s/%s.jpg", postID, name)
}

func (s *imageService) Upload(ctx context.Context, principal guard.Principal, postID uuid.UUID, data []byte) (guard.Decision, string, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return guard.RedirectSafe, "", err
	}

	decision, err := mutationGuard(principal, post)
	if err != nil || decision != guard.Allowed {
		return decision, "", err
	}

	if err := s.processor.ValidateImage(data); err != nil {
		return guard.Allowed, "", fmt.Errorf("%w: %s", model.ErrInvalidImage, err)
	}

	contentType := http.DetectContentType(data)
	url, err := s.storage.Upload(ctx, originalKey(postID), data, contentType)
	if err != nil {
		return guard.Allowed, "", fmt.Errorf("failed to store image: %w", err)
	}

	if err := s.postRepo.SetImageURL(ctx, postID, url); err != nil {
		return guard.Allowed, "", err
	}

	payload, err := json.Marshal(shared.ProcessPostImagePayload{PostID: postID.String()})
	if err != nil {
		return guard.Allowed, "", fmt.Errorf("failed to marshal image task payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeProcessPostImage, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueImages)); err != nil {
		return guard.Allowed, "", fmt.Errorf("failed to enqueue image processing: %w", err)
	}

	return guard.Allowed, url, nil
}

func (s *imageService) ProcessImage(ctx context.Context, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.ImageURL == nil {
		return model.ErrNoImage
	}

	original, err := s.storage.Download(ctx, originalKey(postID))
	if err != nil {
		return fmt.Errorf("failed to fetch original image: %w", err)
	}

	variants, err := s.processor.ProcessImage(original)
	if err != nil {
		return err
	}

	for name, data := range variants {
		if _, err := s.storage.Upload(ctx, variantKey(postID, name), data, "image/jpeg"); err != nil {
			return fmt.Errorf("failed to store %s variant: %w", name, err)
		}
	}

	return nil
}

func (s *imageService) CleanupImages(ctx context.Context, postID uuid.UUID) error {
	return s.storage.DeletePrefix(ctx, fmt.Sprintf("posts/%s/", postID))
}
