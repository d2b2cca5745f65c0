package model

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidImage = errors.New("invalid image")
	ErrNoImage      = errors.New("post has no image")
	ErrCategoryGone = errors.New("category does not exist or is unpublished")
	ErrLocationGone = errors.New("location does not exist")
)
