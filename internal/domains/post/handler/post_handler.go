package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/shared/guard"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/pagination"
	"blogicum-backend/internal/shared/response"
)

type Handler struct {
	postService  service.PostService
	imageService service.ImageService
}

func NewHandler(postService service.PostService, imageService service.ImageService) *Handler {
	return &Handler{
		postService:  postService,
		imageService: imageService,
	}
}

func detailPath(postID uuid.UUID) string {
	return fmt.Sprintf("/posts/%s", postID)
}

func profilePath(username string) string {
	return fmt.Sprintf("/profile/%s", username)
}

// redirectForDecision translates a guard decision into the matching redirect.
// Returns true when the response has been written.
func redirectForDecision(c *gin.Context, decision guard.Decision, postID uuid.UUID) bool {
	switch decision {
	case guard.RedirectLogin:
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return true
	case guard.RedirectSafe:
		// Non-authors land on the post itself, with no error surfaced.
		c.Redirect(http.StatusSeeOther, detailPath(postID))
		return true
	default:
		return false
	}
}

func paginationMeta(pg pagination.Page) *response.Meta {
	return &response.Meta{
		Page:        pg.Number,
		Limit:       pg.Size,
		Total:       pg.TotalItems,
		TotalPages:  pg.TotalPages,
		HasNext:     pg.HasNext,
		HasPrevious: pg.HasPrevious,
	}
}

// ListHome - GET /
func (h *Handler) ListHome(c *gin.Context) {
	var req model.ListRequest
	_ = c.ShouldBindQuery(&req)

	posts, pg, err := h.postService.ListHome(c.Request.Context(), req.Page)
	if err != nil {
		response.InternalServerError(c, "failed to load posts")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, posts, paginationMeta(pg))
}

// GetDetail - GET /posts/:post_id
func (h *Handler) GetDetail(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	detail, err := h.postService.GetDetail(c.Request.Context(), middleware.Principal(c), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalServerError(c, "failed to load post")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// NewPost - GET /posts/create
// Serves the selectable categories and locations for the creation form.
func (h *Handler) NewPost(c *gin.Context) {
	meta, err := h.postService.FormMetadata(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load form data")
		return
	}

	response.Success(c, http.StatusOK, meta)
}

// CreatePost - POST /posts/create
func (h *Handler) CreatePost(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	username, _ := middleware.CurrentUsername(c)

	var form model.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid post", err)
		return
	}

	if _, err := h.postService.Create(c.Request.Context(), userID, form); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, profilePath(username))
}

// EditPost - GET /posts/:post_id/edit
// Serves the post to edit plus the form metadata, owner only.
func (h *Handler) EditPost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	decision, post, err := h.postService.GetForMutation(c.Request.Context(), middleware.Principal(c), postID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	if redirectForDecision(c, decision, postID) {
		return
	}

	meta, err := h.postService.FormMetadata(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "failed to load form data")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"post": post,
		"form": meta,
	})
}

// UpdatePost - POST /posts/:post_id/edit
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	username, _ := middleware.CurrentUsername(c)

	var form model.PostForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid post", err)
		return
	}

	decision, _, err := h.postService.Update(c.Request.Context(), middleware.Principal(c), postID, form)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	if redirectForDecision(c, decision, postID) {
		return
	}

	c.Redirect(http.StatusSeeOther, profilePath(username))
}

// ConfirmDeletePost - GET /posts/:post_id/delete
// Serves the post about to be removed, owner only.
func (h *Handler) ConfirmDeletePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	decision, post, err := h.postService.GetForMutation(c.Request.Context(), middleware.Principal(c), postID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	if redirectForDecision(c, decision, postID) {
		return
	}

	response.Success(c, http.StatusOK, post)
}

// DeletePost - POST /posts/:post_id/delete
func (h *Handler) DeletePost(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	username, _ := middleware.CurrentUsername(c)

	decision, err := h.postService.Delete(c.Request.Context(), middleware.Principal(c), postID)
	if err != nil {
		h.writeLookupError(c, err)
		return
	}
	if redirectForDecision(c, decision, postID) {
		return
	}

	c.Redirect(http.StatusSeeOther, profilePath(username))
}

// UploadImage - POST /posts/:post_id/image
func (h *Handler) UploadImage(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "failed to read image")
		return
	}

	decision, url, err := h.imageService.Upload(c.Request.Context(), middleware.Principal(c), postID, data)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		if errors.Is(err, model.ErrInvalidImage) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to store image")
		return
	}
	if redirectForDecision(c, decision, postID) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"image_url": url})
}

// ExportPosts - GET /posts/export
// Streams the requester's posts as a spreadsheet.
func (h *Handler) ExportPosts(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	username, _ := middleware.CurrentUsername(c)

	f, err := h.postService.Export(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "failed to build export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="posts_%s.xlsx"`, username))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		response.InternalServerError(c, "failed to write export")
	}
}

func parsePostID(c *gin.Context) (uuid.UUID, bool) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		response.NotFound(c, "post not found")
		return uuid.Nil, false
	}
	return postID, true
}

func (h *Handler) writeLookupError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrPostNotFound) {
		response.NotFound(c, "post not found")
		return
	}
	response.InternalServerError(c, "failed to load post")
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, model.ErrCategoryGone):
		response.BadRequest(c, "category does not exist")
	case errors.Is(err, model.ErrLocationGone):
		response.BadRequest(c, "location does not exist")
	default:
		response.InternalServerError(c, "failed to save post")
	}
}
