package domain

import "time"

// Notification is a message delivered to a single user.
type Notification struct {
	NotificationID int       `db:"notification_id" json:"notificationId"`
	Title          string    `db:"title" json:"title"`
	Message        string    `db:"message" json:"message"`
	IsRead         bool      `db:"is_read" json:"isRead"`
	UserID         int       `db:"user_id" json:"userId"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedBy      string    `db:"created_by" json:"createdBy"`
	Channel        string    `db:"notification_channel" json:"notificationChannel"`
	Type           string    `db:"notification_type" json:"notificationType"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// CreateNotificationRequest carries the data needed to create a notification.
type CreateNotificationRequest struct {
	Title     string `json:"title" binding:"required"`
	Message   string `json:"message" binding:"required"`
	UserID    int    `json:"userId" binding:"required"`
	CreatedBy string `json:"createdBy" binding:"required"`
	Channel   string `json:"notificationChannel" binding:"required"`
	Type      string `json:"notificationType" binding:"required"`
}

// UpdateNotificationRequest carries the fields that can be updated on a
// notification.
type UpdateNotificationRequest struct {
	Title    *string `json:"title,omitempty"`
	Message  *string `json:"message,omitempty"`
	IsRead   *bool   `json:"isRead,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
