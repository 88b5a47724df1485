package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the request ID in and out
	HeaderRequestID = "X-Request-Id"
	// ContextKeyRequestID is the key for the request ID in the Gin context
	ContextKeyRequestID = "request_id"
)

// RequestID reuses an incoming X-Request-Id or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID extracts the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	id, _ := c.Get(ContextKeyRequestID)
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}
