package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/comment/model"
	"blogicum-backend/internal/domains/comment/service"
	postModel "blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/guard"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/response"
)

type Handler struct {
	commentService service.CommentService
}

func NewHandler(commentService service.CommentService) *Handler {
	return &Handler{
		commentService: commentService,
	}
}

func detailPath(postID uuid.UUID) string {
	return fmt.Sprintf("/posts/%s", postID)
}

// writeDecision translates a guard decision into the matching response.
// Returns true when the response has been written. Unlike post mutations,
// a non-author gets an explicit denial here.
func writeDecision(c *gin.Context, decision guard.Decision) bool {
	switch decision {
	case guard.RedirectLogin:
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return true
	case guard.Forbidden:
		response.Forbidden(c, "only the comment author may do that")
		return true
	default:
		return false
	}
}

// NewComment - GET /posts/:post_id/comment
// Serves the empty submission form.
func (h *Handler) NewComment(c *gin.Context) {
	if _, ok := parseID(c, "post_id"); !ok {
		return
	}
	response.Success(c, http.StatusOK, model.CommentForm{})
}

// CreateComment - POST /posts/:post_id/comment
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}

	var form model.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid comment", err)
		return
	}

	decision, _, err := h.commentService.Create(c.Request.Context(), middleware.Principal(c), postID, form)
	if writeDecision(c, decision) {
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath(postID))
}

// EditComment - GET /posts/:post_id/edit_comment/:comment_id
// Serves the comment to edit, author only.
func (h *Handler) EditComment(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	decision, comment, err := h.commentService.GetForEdit(c.Request.Context(), middleware.Principal(c), postID, commentID)
	if writeDecision(c, decision) {
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comment)
}

// UpdateComment - POST /posts/:post_id/edit_comment/:comment_id
func (h *Handler) UpdateComment(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	var form model.CommentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid comment", err)
		return
	}

	decision, _, err := h.commentService.Update(c.Request.Context(), middleware.Principal(c), postID, commentID, form)
	if writeDecision(c, decision) {
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath(postID))
}

// DeleteComment - POST /posts/:post_id/delete_comment/:comment_id
func (h *Handler) DeleteComment(c *gin.Context) {
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	decision, err := h.commentService.Delete(c.Request.Context(), middleware.Principal(c), postID, commentID)
	if writeDecision(c, decision) {
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, detailPath(postID))
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.NotFound(c, "not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, postModel.ErrPostNotFound):
		response.NotFound(c, "post not found")
	default:
		response.InternalServerError(c, "failed to save comment")
	}
}
