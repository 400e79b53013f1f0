package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers notification routes.
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("", h.CreateNotification)
		notifications.GET("", h.ListNotifications)
		notifications.GET("/:id", h.GetNotification)
		notifications.PATCH("/:id", h.UpdateNotification)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}

// CreateNotification creates a notification.
// POST /api/notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req domain.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid notification payload", nil))
		return
	}

	n, err := h.notificationService.CreateNotification(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, n)
}

// ListNotifications returns the active notifications of one user.
// GET /api/notifications?userId=7
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID < 1 {
		ErrorResponse(c, domain.NewValidationError("INVALID_USER_ID", "userId must be a positive integer",
			map[string]interface{}{"field": "userId"}))
		return
	}

	notifications, err := h.notificationService.ListNotificationsByUser(c.Request.Context(), userID)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, notifications)
}

// GetNotification returns one notification.
// GET /api/notifications/:id
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	n, err := h.notificationService.GetNotification(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, n)
}

// UpdateNotification applies a partial update to a notification.
// PATCH /api/notifications/:id
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req domain.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid notification payload", nil))
		return
	}

	n, err := h.notificationService.UpdateNotification(c.Request.Context(), id, &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, n)
}

// MarkRead marks a notification as read.
// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	n, err := h.notificationService.MarkRead(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, n)
}

// DeleteNotification removes a notification.
// DELETE /api/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), id); err != nil {
		ErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}
