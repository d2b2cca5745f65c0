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

// ProcessImageHandler builds the resized variants for a post's uploaded image.
type ProcessImageHandler struct {
	imageService postService.ImageService
}

func NewProcessImageHandler(imageService postService.ImageService) *ProcessImageHandler {
	return &ProcessImageHandler{
		imageService: imageService,
	}
}

func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessPostImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessPostImage payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	postID, err := uuid.Parse(payload.PostID)
	if err != nil {
		log.Error().Err(err).Str("post_id", payload.PostID).Msg("Invalid post id in image task")
		return fmt.Errorf("parse post id: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Msg("Processing post image variants")

	if err := h.imageService.ProcessImage(ctx, postID); err != nil {
		log.Error().
			Err(err).
			Str("post_id", payload.PostID).
			Msg("Failed to process post image")
		return fmt.Errorf("process image: %w", err)
	}

	log.Info().
		Str("post_id", payload.PostID).
		Msg("Post image processed successfully")

	return nil
}
