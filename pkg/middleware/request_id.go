package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDMiddleware assigns a UUID to each request (honoring an inbound
// X-Request-ID from a trusted proxy) and echoes it back in the response so
// log lines and client reports can be correlated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestIDFrom returns the request id assigned by RequestIDMiddleware.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
