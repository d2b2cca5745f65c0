package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/category"
	postModel "blogicum-backend/internal/domains/post/model"
	postService "blogicum-backend/internal/domains/post/service"
	"blogicum-backend/internal/shared/pagination"
	"blogicum-backend/internal/shared/response"
)

type Handler struct {
	categoryService category.Service
	postService     postService.PostService
}

func NewHandler(categoryService category.Service, posts postService.PostService) *Handler {
	return &Handler{
		categoryService: categoryService,
		postService:     posts,
	}
}

// ListByCategory - GET /category/:slug
// The category page: the category itself plus its visible posts, paginated.
// An unpublished category 404s exactly like a missing one.
func (h *Handler) ListByCategory(c *gin.Context) {
	slug := c.Param("slug")

	cat, err := h.categoryService.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		response.InternalServerError(c, "failed to load category")
		return
	}

	var req postModel.ListRequest
	_ = c.ShouldBindQuery(&req)

	posts, pg, err := h.postService.ListForCategory(c.Request.Context(), cat.ID, req.Page)
	if err != nil {
		response.InternalServerError(c, "failed to load posts")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{
		"category": category.NewCategoryResponse(cat),
		"posts":    posts,
	}, paginationMeta(pg))
}

// ListCategories - GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	// ?all=true includes unpublished categories on the admin surface.
	publishedOnly := c.Query("all") != "true"

	cats, err := h.categoryService.List(c.Request.Context(), publishedOnly)
	if err != nil {
		response.InternalServerError(c, "failed to load categories")
		return
	}

	response.Success(c, http.StatusOK, cats)
}

// CreateCategory - POST /categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category", err)
		return
	}

	created, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, category.ErrSlugTaken) {
			response.Conflict(c, "slug is already in use")
			return
		}
		response.InternalServerError(c, "failed to create category")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// UpdateCategory - PUT /categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category", err)
		return
	}

	updated, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		response.InternalServerError(c, "failed to update category")
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteCategory - DELETE /categories/:id
// Posts in the category survive with a null category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			response.NotFound(c, "category not found")
			return
		}
		response.InternalServerError(c, "failed to delete category")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func parseCategoryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "category not found")
		return uuid.Nil, false
	}
	return id, true
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
