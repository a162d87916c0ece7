package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/travel_ledger/internal/platform/observability"
	"github.com/gin-gonic/gin"
)

// Metrics records request duration by matched route.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
