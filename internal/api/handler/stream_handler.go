package handler

import (
	"errors"

	"sune-tv/internal/api/dto"
	"sune-tv/internal/api/response"
	"sune-tv/internal/service"
	"sune-tv/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StreamHandler struct {
	streamService *service.StreamService
}

func NewStreamHandler(streamService *service.StreamService) *StreamHandler {
	return &StreamHandler{streamService: streamService}
}

// List lists active streams
// @Summary List streams
// @Description Active streams filtered by category (id or slug), quality, featured and live flags, searched and ordered
// @Tags streams
// @Produce json
// @Param category query string false "Category id or slug"
// @Param quality query string false "SD, HD, FHD or 4K"
// @Param is_featured query bool false "Featured flag"
// @Param is_live query bool false "Live flag"
// @Param search query string false "Terms matched against title, description, cast and director"
// @Param ordering query string false "created_at, view_count, rating or title; prefix with - for descending"
// @Success 200 {object} response.Response{data=[]dto.StreamListItem}
// @Failure 400 {object} response.ErrorResponse
// @Router /streams/ [get]
func (h *StreamHandler) List(c *gin.Context) {
	var q dto.StreamListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.streamService.List(c.Request.Context(), &q)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Streams retrieved", items)
}

// Create adds a stream
// @Summary Create stream
// @Tags streams
// @Accept json
// @Produce json
// @Param body body dto.StreamCreateRequest true "Stream"
// @Success 201 {object} response.Response{data=dto.StreamDetail}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /streams/ [post]
func (h *StreamHandler) Create(c *gin.Context) {
	var req dto.StreamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.streamService.Create(c.Request.Context(), &req)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.Created(c, "Stream created", detail)
}

// Get returns one active stream and counts the view.
// @Summary Stream detail
// @Description Every successful fetch increments view_count by one
// @Tags streams
// @Produce json
// @Param id path int true "Stream id"
// @Success 200 {object} response.Response{data=dto.StreamDetail}
// @Failure 404 {object} response.ErrorResponse
// @Router /streams/{id}/ [get]
func (h *StreamHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c, service.ErrStreamNotFound.Error())
		return
	}

	detail, err := h.streamService.GetDetail(c.Request.Context(), id)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Stream retrieved", detail)
}

// Update PUT|PATCH /api/streams/:id/
func (h *StreamHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c, service.ErrStreamNotFound.Error())
		return
	}

	var req dto.StreamUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.streamService.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Stream updated", detail)
}

// Delete DELETE /api/streams/:id/
func (h *StreamHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c, service.ErrStreamNotFound.Error())
		return
	}

	if err := h.streamService.Delete(c.Request.Context(), id); err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Stream deleted", nil)
}

// Featured GET /api/streams/featured/
func (h *StreamHandler) Featured(c *gin.Context) {
	items, err := h.streamService.Featured(c.Request.Context())
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Featured streams retrieved", items)
}

// Live GET /api/streams/live/
func (h *StreamHandler) Live(c *gin.Context) {
	items, err := h.streamService.Live(c.Request.Context())
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Live streams retrieved", items)
}

// Trending GET /api/streams/trending/
func (h *StreamHandler) Trending(c *gin.Context) {
	items, err := h.streamService.Trending(c.Request.Context())
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Trending streams retrieved", items)
}

// ByCategory GET /api/streams/by_category/
func (h *StreamHandler) ByCategory(c *gin.Context) {
	groups, err := h.streamService.ByCategory(c.Request.Context())
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Streams grouped by category", groups)
}

// IncrementView counts a view without fetching the stream
// @Summary Increment view count
// @Tags streams
// @Produce json
// @Param id path int true "Stream id"
// @Success 200 {object} response.Response{data=dto.ViewCount}
// @Failure 404 {object} response.ErrorResponse
// @Router /streams/{id}/increment_view/ [post]
func (h *StreamHandler) IncrementView(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c, service.ErrStreamNotFound.Error())
		return
	}

	count, err := h.streamService.IncrementView(c.Request.Context(), id)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "View counted", count)
}

// Bulk POST /api/streams/bulk/:action/
func (h *StreamHandler) Bulk(c *gin.Context) {
	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.streamService.Bulk(c.Request.Context(), c.Param("action"), req.IDs)
	if err != nil {
		handleStreamError(c, err)
		return
	}
	response.OK(c, "Bulk action applied", result)
}

func handleStreamError(c *gin.Context, err error) {
	if validationFailed(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrStreamNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUnknownBulkAction):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrStreamSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Stream operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "Operation failed, please retry later")
	}
}
