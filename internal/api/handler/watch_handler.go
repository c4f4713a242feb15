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

type WatchHandler struct {
	watchService *service.WatchService
}

func NewWatchHandler(watchService *service.WatchService) *WatchHandler {
	return &WatchHandler{watchService: watchService}
}

// List GET /api/watch-history/
func (h *WatchHandler) List(c *gin.Context) {
	var q dto.WatchHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	events, err := h.watchService.List(c.Request.Context(), &q)
	if err != nil {
		handleWatchError(c, err)
		return
	}
	response.OK(c, "Watch history retrieved", events)
}

// Track records one playback session
// @Summary Track watch event
// @Tags watch-history
// @Accept json
// @Produce json
// @Param body body dto.WatchTrackRequest true "Watch event"
// @Success 201 {object} response.Response{data=dto.WatchEventInfo}
// @Failure 400 {object} response.ErrorResponse
// @Router /watch-history/track/ [post]
func (h *WatchHandler) Track(c *gin.Context) {
	var req dto.WatchTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.watchService.Track(c.Request.Context(), &req)
	if err != nil {
		handleWatchError(c, err)
		return
	}
	response.Created(c, "Watch event tracked", info)
}

// ByDevice returns one device's history, newest first
// @Summary Watch history by device
// @Tags watch-history
// @Produce json
// @Param device_id query string true "Device id"
// @Success 200 {object} response.Response{data=[]dto.WatchEventInfo}
// @Failure 400 {object} response.ErrorResponse
// @Router /watch-history/by_device/ [get]
func (h *WatchHandler) ByDevice(c *gin.Context) {
	events, err := h.watchService.ByDevice(c.Request.Context(), c.Query("device_id"))
	if err != nil {
		handleWatchError(c, err)
		return
	}
	response.OK(c, "Watch history retrieved", events)
}

// DeleteByDevice DELETE /api/watch-history/by_device/
func (h *WatchHandler) DeleteByDevice(c *gin.Context) {
	deleted, err := h.watchService.DeleteByDevice(c.Request.Context(), c.Query("device_id"))
	if err != nil {
		handleWatchError(c, err)
		return
	}
	response.OK(c, "Watch history deleted", deleted)
}

// Get GET /api/watch-history/:id/
func (h *WatchHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.NotFound(c, service.ErrWatchEventNotFound.Error())
		return
	}

	info, err := h.watchService.Get(c.Request.Context(), id)
	if err != nil {
		handleWatchError(c, err)
		return
	}
	response.OK(c, "Watch event retrieved", info)
}

func handleWatchError(c *gin.Context, err error) {
	if validationFailed(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrDeviceIDRequired):
		response.ValidationFailed(c, "device_id", err.Error())
	case errors.Is(err, service.ErrWatchEventNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Watch history operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "Operation failed, please retry later")
	}
}
