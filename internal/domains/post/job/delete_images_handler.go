package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	postService "blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/shared"
)

// DeleteImagesHandler removes every stored image of a deleted post.
type DeleteImagesHandler struct {
	imageService postService.ImageService
}

func NewDeleteImagesHandler(imageService postService.ImageService) *DeleteImagesHandler {
	return &DeleteImagesHandler{
		imageService: imageService,
	}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeletePostImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeletePostImages payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	postID, err := uuid.Parse(payload.PostID)
	if err != nil {
		log.Error().Err(err).Str("post_id", payload.PostID).Msg("Invalid post id in cleanup task")
		return fmt.Errorf("parse post id: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Msg("Deleting post images")

	if err := h.imageService.CleanupImages(ctx, postID); err != nil {
		log.Error().
			Err(err).
			Str("post_id", payload.PostID).
			Msg("Failed to delete post images")
		return fmt.Errorf("delete images: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Msg("Post images deleted successfully")

	return nil
}
