package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronogate/chronogate/logger"
)

// RequestLogger returns a Gin middleware that logs every request with
// method, path, status, and duration. Health checks are silently skipped.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path = path + "?" + q
		}

		fields := map[string]interface{}{
			"method":              c.Request.Method,
			"path":                path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  latency.Milliseconds(),
			logger.FieldRequestID: c.GetString("request_id"),
		}

		switch {
		case status >= 500:
			logger.Error("Request completed", fields)
		case status >= 400:
			logger.Warn("Request completed", fields)
		default:
			logger.Debug("Request completed", fields)
		}
	}
}
