package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// UserHandler handles account CRUD endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// CreateUser registers a new account.
// POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req domain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid user payload", nil))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, user)
}

// ListUsers returns one page of accounts.
// GET /api/users?page=1&pageSize=20
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.userService.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

// GetUser returns one account.
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, user)
}

// UpdateUser applies a partial update to an account.
// PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req domain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid user payload", nil))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, user)
}

// DeleteUser removes an account.
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		ErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}

// pathID parses the :id path parameter common to most resource routes.
func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("INVALID_ID", "Path id must be a positive integer",
			map[string]interface{}{"field": "id"})
	}
	return id, nil
}
