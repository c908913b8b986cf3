package middleware

import (
	"strconv"

	"github.com/flexprice/salestax/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests by method, route template and status
func MetricsMiddleware(c *gin.Context) {
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
}
