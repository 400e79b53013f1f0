package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// RequestLoggerConfig holds configuration for the persisting request logger.
type RequestLoggerConfig struct {
	// SkipPaths are not persisted. Health probes would otherwise dominate
	// the table.
	SkipPaths []string
	// WriteTimeout bounds each asynchronous insert.
	WriteTimeout time.Duration
}

// RequestLoggerMiddleware persists one row per handled request. The insert
// happens off the request goroutine; a failed insert is logged and dropped,
// never surfaced to the client.
func RequestLoggerMiddleware(requestLogs repository.RequestLogRepository, logger *slog.Logger, config RequestLoggerConfig) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 5 * time.Second
	}
	skip := make(map[string]bool, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if skip[c.Request.URL.Path] {
			return
		}

		entry := &domain.RequestLog{
			Endpoint:     c.Request.URL.Path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: int(time.Since(start).Milliseconds()),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			Username:     c.GetString(ContextUsernameKey),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), config.WriteTimeout)
			defer cancel()
			if err := requestLogs.Create(ctx, entry); err != nil {
				logger.Warn("request log insert failed",
					"endpoint", entry.Endpoint,
					"error", err,
				)
			}
		}()
	}
}
