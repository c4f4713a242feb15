package router

import (
	"sune-tv/internal/api/handler"
	"sune-tv/internal/api/middleware"

	_ "sune-tv/internal/api/openapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewEngine returns a gin engine with the standard middleware chain and the
// operational routes (health, metrics, docs) registered.
func NewEngine(health *handler.HealthHandler) *gin.Engine {
	handler.RegisterValidatorTagNames()

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.GET("/", health.Root)
	r.GET("/healthz", health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

// Setup registers the catalog API under basePath.
func Setup(
	r *gin.Engine,
	basePath string,
	categoryHandler *handler.CategoryHandler,
	streamHandler *handler.StreamHandler,
	watchHandler *handler.WatchHandler,
	searchHandler *handler.SearchHandler,
) {
	api := r.Group(basePath)

	// --- categories ---
	categories := api.Group("/categories")
	{
		categories.GET("/", categoryHandler.List)
		categories.POST("/", categoryHandler.Create)
		categories.GET("/:slug/", categoryHandler.Get)
		categories.PUT("/:slug/", categoryHandler.Update)
		categories.PATCH("/:slug/", categoryHandler.Update)
		categories.DELETE("/:slug/", categoryHandler.Delete)
		categories.GET("/:slug/streams/", categoryHandler.Streams)
	}

	// --- streams ---
	streams := api.Group("/streams")
	{
		streams.GET("/", streamHandler.List)
		streams.POST("/", streamHandler.Create)

		streams.GET("/featured/", streamHandler.Featured)
		streams.GET("/by_category/", streamHandler.ByCategory)
		streams.GET("/search/", searchHandler.Search)
		streams.GET("/live/", streamHandler.Live)
		streams.GET("/trending/", streamHandler.Trending)
		streams.POST("/bulk/:action/", streamHandler.Bulk)

		streams.GET("/:id/", streamHandler.Get)
		streams.PUT("/:id/", streamHandler.Update)
		streams.PATCH("/:id/", streamHandler.Update)
		streams.DELETE("/:id/", streamHandler.Delete)
		streams.POST("/:id/increment_view/", streamHandler.IncrementView)
	}

	// Short detail alias used by the players.
	api.GET("/stream/:id/", streamHandler.Get)

	// --- watch history ---
	history := api.Group("/watch-history")
	{
		history.GET("/", watchHandler.List)
		history.POST("/", watchHandler.Track)
		history.POST("/track/", watchHandler.Track)
		history.GET("/by_device/", watchHandler.ByDevice)
		history.DELETE("/by_device/", watchHandler.DeleteByDevice)
		history.GET("/:id/", watchHandler.Get)
	}

	// --- search index ---
	api.POST("/search/sync/", searchHandler.Sync)
}
