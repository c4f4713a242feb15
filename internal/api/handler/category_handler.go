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

type CategoryHandler struct {
	categoryService *service.CategoryService
	streamService   *service.StreamService
}

func NewCategoryHandler(categoryService *service.CategoryService, streamService *service.StreamService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, streamService: streamService}
}

// List lists active categories
// @Summary List categories
// @Description Active categories by display order, each with its active stream count
// @Tags categories
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.CategoryInfo}
// @Router /categories/ [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		handleCategoryError(c, err)
		return
	}
	response.OK(c, "Categories retrieved", list)
}

// Get GET /api/categories/:slug/
func (h *CategoryHandler) Get(c *gin.Context) {
	info, err := h.categoryService.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleCategoryError(c, err)
		return
	}
	response.OK(c, "Category retrieved", info)
}

// Streams GET /api/categories/:slug/streams/
func (h *CategoryHandler) Streams(c *gin.Context) {
	items, err := h.streamService.CategoryStreams(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleCategoryError(c, err)
		return
	}
	response.OK(c, "Category streams retrieved", items)
}

// Create POST /api/categories/
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		handleCategoryError(c, err)
		return
	}
	response.Created(c, "Category created", info)
}

// Update PUT|PATCH /api/categories/:slug/
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.categoryService.Update(c.Request.Context(), c.Param("slug"), &req)
	if err != nil {
		handleCategoryError(c, err)
		return
	}
	response.OK(c, "Category updated", info)
}

// Delete DELETE /api/categories/:slug/
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		handleCategoryError(c, err)
		return
	}
	response.OK(c, "Category deleted", nil)
}

func handleCategoryError(c *gin.Context, err error) {
	if validationFailed(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Category operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "Operation failed, please retry later")
	}
}
