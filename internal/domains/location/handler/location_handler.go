package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/shared/response"
)

type Handler struct {
	locationService location.Service
}

func NewHandler(locationService location.Service) *Handler {
	return &Handler{
		locationService: locationService,
	}
}

// ListLocations - GET /locations
func (h *Handler) ListLocations(c *gin.Context) {
	publishedOnly := c.Query("all") != "true"

	locs, err := h.locationService.List(c.Request.Context(), publishedOnly)
	if err != nil {
		response.InternalServerError(c, "failed to load locations")
		return
	}

	response.Success(c, http.StatusOK, locs)
}

// CreateLocation - POST /locations
func (h *Handler) CreateLocation(c *gin.Context) {
	var req location.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid location", err)
		return
	}

	created, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "failed to create location")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// UpdateLocation - PUT /locations/:id
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := parseLocationID(c)
	if !ok {
		return
	}

	var req location.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid location", err)
		return
	}

	updated, err := h.locationService.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.NotFound(c, "location not found")
			return
		}
		response.InternalServerError(c, "failed to update location")
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteLocation - DELETE /locations/:id
// Posts tagged with the location survive with a null location.
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := parseLocationID(c)
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			response.NotFound(c, "location not found")
			return
		}
		response.InternalServerError(c, "failed to delete location")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func parseLocationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "location not found")
		return uuid.Nil, false
	}
	return id, true
}
