package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/observability"
)

// Metrics instruments request counts and latency. Safe with a nil Metrics.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		m.ObserveRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
