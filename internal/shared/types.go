package shared

// Asynq task types and queues.
const (
	TypeProcessPostImage = "post:process_image"
	TypeDeletePostImages = "post:delete_images"

	QueueDefault = "default"
	QueueImages  = "images"
)

// ProcessPostImagePayload asks the worker to build resized variants for a
// post's uploaded image.
type ProcessPostImagePayload struct {
	PostID string `json:"post_id"`
}

// DeletePostImagesPayload asks the worker to remove every stored object for
// a deleted post.
type DeletePostImagesPayload struct {
	PostID string `json:"post_id"`
}
