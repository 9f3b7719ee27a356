// Package middleware provides the Gin middleware stack used by the
// chronogate servers.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/chronogate/chronogate/errors"
	"github.com/chronogate/chronogate/logger"
)

// Recovery returns a Gin middleware that recovers from panics and responds
// with a server_error envelope. No stack traces or internal state reach the
// client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", map[string]interface{}{
					"error":  fmt.Sprintf("%v", r),
					"stack":  string(debug.Stack()),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					errors.ServerError(fmt.Errorf("%v", r)).ToEnvelope())
			}
		}()
		c.Next()
	}
}
