package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers authentication routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auths := router.Group("/auths")
	{
		auths.POST("/login", h.Login)
		auths.POST("/logout", h.Logout)
		auths.POST("/verify-token", h.VerifyToken)
		auths.POST("/refresh-token", h.RefreshToken)
	}
}

// Login authenticates a user and issues a token.
// POST /api/auths/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid login request", nil))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, resp)
}

type logoutRequest struct {
	UserID int `json:"userId" binding:"required"`
}

// Logout flips the user's login flag and invalidates the session.
// POST /api/auths/logout
//
// The response echoes isLogged=false unconditionally rather than the state
// the toggle actually produced. Kept for client compatibility.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid logout request", nil))
		return
	}

	if _, err := h.authService.Logout(c.Request.Context(), req.UserID); err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, gin.H{
		"userId":   strconv.Itoa(req.UserID),
		"isLogged": false,
	})
}

type verifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyToken decodes a token and checks it against the invalidation cache.
// POST /api/auths/verify-token
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid verify request", nil))
		return
	}

	resp, err := h.authService.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, resp)
}

// RefreshToken issues a fresh token for a still-valid session.
// POST /api/auths/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid refresh request", nil))
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req.Token)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, resp)
}
