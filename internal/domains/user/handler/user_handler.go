package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	postModel "blogicum-backend/internal/domains/post/model"
	postService "blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/domains/user/model"
	"blogicum-backend/internal/domains/user/service"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/pagination"
	"blogicum-backend/internal/shared/response"
)

type Handler struct {
	userService service.UserService
	postService postService.PostService
}

func NewHandler(userService service.UserService, posts postService.PostService) *Handler {
	return &Handler{
		userService: userService,
		postService: posts,
	}
}

// Register - POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid registration", err)
		return
	}

	created, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			response.Conflict(c, "username is already in use")
		case errors.Is(err, model.ErrEmailTaken):
			response.Conflict(c, "email is already in use")
		default:
			response.InternalServerError(c, "failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid login", err)
		return
	}

	login, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		response.InternalServerError(c, "failed to log in")
		return
	}

	response.Success(c, http.StatusOK, login)
}

// Profile - GET /profile/:username
// The profile page: the user plus their posts, paginated. The owner sees
// their drafts and scheduled posts; everyone else sees only the public set.
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}

	principal := middleware.Principal(c)
	includeHidden := principal.Authenticated && principal.ID == profile.ID

	var req postModel.ListRequest
	_ = c.ShouldBindQuery(&req)

	posts, pg, err := h.postService.ListForAuthor(c.Request.Context(), profile.ID, includeHidden, req.Page)
	if err != nil {
		response.InternalServerError(c, "failed to load posts")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"profile": profile,
		"posts":   posts,
	}, paginationMeta(pg))
}

// EditProfileForm - GET /edit_profile
// Serves the requester's current identity fields.
func (h *Handler) EditProfileForm(c *gin.Context) {
	username, _ := middleware.CurrentUsername(c)

	profile, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile - POST /edit_profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid profile", err)
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			response.Conflict(c, "username is already in use")
		case errors.Is(err, model.ErrEmailTaken):
			response.Conflict(c, "email is already in use")
		default:
			response.InternalServerError(c, "failed to update profile")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/profile/%s", updated.Username))
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
