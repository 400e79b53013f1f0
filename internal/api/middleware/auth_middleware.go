package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"socialnet/internal/services"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	ContextUserIDKey   = "auth_user_id"
	ContextUsernameKey = "auth_username"
	ContextRoleKey     = "auth_role"
)

// AuthMiddleware guards routes behind a valid, non-invalidated token.
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth rejects requests without a valid session token. The token is
// taken from the Authorization header or, failing that, the access_token
// cookie.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "MISSING_TOKEN", "Authentication token is required")
			return
		}

		result, err := m.authService.VerifyToken(c.Request.Context(), token)
		if err != nil || !result.Valid {
			abortUnauthorized(c, "INVALID_TOKEN", "Token is invalid or has been invalidated")
			return
		}

		c.Set(ContextUserIDKey, result.Claims.UserID)
		c.Set(ContextUsernameKey, result.Claims.Username)
		c.Set(ContextRoleKey, result.Claims.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role does not match.
// Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRoleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "AUTHORIZATION_ERROR",
					"code":    "INSUFFICIENT_ROLE",
					"message": "Access denied",
				},
			})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"type":    "AUTHENTICATION_ERROR",
			"code":    code,
			"message": message,
		},
	})
}
