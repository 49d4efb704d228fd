// internal/middleware/logging_middleware.go
package middleware

import (
	"strconv"
	"time"

	"fotolio-service/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every request and feeds the latency histogram.
// The metric path label uses the route pattern, not the raw URL, so
// /campaigns/42 and /campaigns/43 share a series.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordRequestDuration(c.Request.Method, path, strconv.Itoa(status), latency.Seconds())

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
