package main

import (
	"github.com/hibiken/asynq"

	postJob "blogicum-backend/internal/domains/post/job"
	"blogicum-backend/internal/shared"
	"blogicum-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	processPostImage *postJob.ProcessImageHandler
	deletePostImages *postJob.DeleteImagesHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processPostImage: postJob.NewProcessImageHandler(c.ImageService),
		deletePostImages: postJob.NewDeleteImagesHandler(c.ImageService),
	}
}

// RegisterHandlers binds every task type to its handler.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessPostImage, h.processPostImage.ProcessTask)
	mux.HandleFunc(shared.TypeDeletePostImages, h.deletePostImages.ProcessTask)
}
