package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/observability"
)

const unmatchedRoute = "unmatched"

// Metrics records request latency labelled by route template, so /user/1 and
// /user/2 share a series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		observability.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
