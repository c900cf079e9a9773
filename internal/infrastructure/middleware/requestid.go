package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
)

// RequestID reuses an incoming X-Request-ID or assigns a fresh one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(httputil.RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		c.Set(httputil.RequestIDKey, requestID)
		c.Header(httputil.RequestIDHeader, requestID)
		c.Next()
	}
}
