package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware keeps a valid incoming X-Request-ID or generates a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
