package handler

import (
	"errors"

	"sune-tv/internal/api/response"
	"sune-tv/internal/service"
	"sune-tv/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search matches q against active streams
// @Summary Search streams
// @Description Case-insensitive substring match of q against title, description, cast and director
// @Tags streams
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Response{data=dto.SearchResult}
// @Failure 400 {object} response.ErrorResponse "q missing"
// @Router /streams/search/ [get]
func (h *SearchHandler) Search(c *gin.Context) {
	result, err := h.searchService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleSearchError(c, err)
		return
	}
	response.OK(c, "Search completed", result)
}

// Sync reindexes all active streams
// @Summary Sync search index
// @Tags search
// @Produce json
// @Success 200 {object} response.Response{data=dto.SyncResult}
// @Failure 503 {object} response.ErrorResponse "index disabled"
// @Router /search/sync/ [post]
func (h *SearchHandler) Sync(c *gin.Context) {
	result, err := h.searchService.SyncAll(c.Request.Context())
	if err != nil {
		handleSearchError(c, err)
		return
	}
	response.OK(c, "Sync completed", result)
}

func handleSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSearchQueryRequired):
		response.ValidationFailed(c, "q", err.Error())
	case errors.Is(err, service.ErrSearchIndexDisabled):
		response.ServiceUnavailable(c, err.Error())
	default:
		logger.Error("Search operation failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "Search failed")
	}
}
