package middleware

import (
	"strconv"
	"time"

	"go-portfolio/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics observes the duration of every routed request.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
