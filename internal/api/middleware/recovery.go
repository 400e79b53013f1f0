package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware returns a panic recovery middleware. The panic and its
// stack are logged under the request ID; the client gets a clean 500.
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := GetRequestID(c)

		logger.Error("panic recovered",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", fmt.Sprintf("%v", recovered),
			"stack", string(debug.Stack()),
		)

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"type":       "INTERNAL_ERROR",
				"code":       "PANIC_RECOVERED",
				"message":    "Service temporarily unavailable",
				"request_id": requestID,
			},
		})
	})
}
