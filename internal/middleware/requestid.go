package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/platform/requestid"
)

const requestIDKey = "request_id"

// RequestID propagates an inbound X-Request-Id or mints a fresh one, and
// echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if id == "" {
			id = requestid.New()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
