package middleware

import (
	"time"

	"sune-tv/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.ObserveRequest(c.Request.Method, route, c.Writer.Status(), start)
	}
}
