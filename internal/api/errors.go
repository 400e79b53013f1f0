package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"socialnet/internal/domain"
)

var (
	errorLogger     *slog.Logger
	errorLoggerOnce sync.Once
)

func getErrorLogger() *slog.Logger {
	errorLoggerOnce.Do(func() {
		errorLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	})
	return errorLogger
}

// ErrorResponse maps an error to an HTTP response. Domain errors keep their
// type and code; anything else is collapsed to a generic internal error so
// that store and driver details never reach the client. The full error is
// logged server-side under a correlation id.
func ErrorResponse(c *gin.Context, err error) {
	correlationID := getOrCreateCorrelationID(c)

	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		logError(c, err, correlationID,
			slog.String("error_type", string(domainErr.Type)),
			slog.String("error_code", domainErr.Code),
		)
		c.JSON(statusForErrorType(domainErr.Type), gin.H{
			"success":       false,
			"correlationId": correlationID,
			"error": gin.H{
				"type":    domainErr.Type,
				"code":    domainErr.Code,
				"message": domainErr.Message,
			},
		})
		return
	}

	logError(c, err, correlationID)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":       false,
		"correlationId": correlationID,
		"error": gin.H{
			"type":    domain.InternalError,
			"code":    "SYSTEM_ERROR",
			"message": "An unexpected error occurred. Please try again later.",
		},
	})
}

func getOrCreateCorrelationID(c *gin.Context) string {
	if id := c.GetString("correlation_id"); id != "" {
		return id
	}
	if id := c.GetHeader("X-Correlation-ID"); id != "" {
		c.Set("correlation_id", id)
		return id
	}
	id := uuid.New().String()
	c.Set("correlation_id", id)
	c.Header("X-Correlation-ID", id)
	return id
}

func logError(c *gin.Context, err error, correlationID string, extra ...any) {
	args := []any{
		slog.String("correlation_id", correlationID),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("remote_addr", c.ClientIP()),
		slog.String("error", err.Error()),
	}
	args = append(args, extra...)
	getErrorLogger().ErrorContext(c.Request.Context(), "request failed", args...)
}

func statusForErrorType(errorType domain.ErrorType) int {
	switch errorType {
	case domain.ValidationError:
		return http.StatusBadRequest
	case domain.NotFoundError:
		return http.StatusNotFound
	case domain.ConflictError:
		return http.StatusConflict
	case domain.AuthenticationError:
		return http.StatusUnauthorized
	case domain.AuthorizationError:
		return http.StatusForbidden
	case domain.ExternalServiceError:
		return http.StatusBadGateway
	case domain.InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
