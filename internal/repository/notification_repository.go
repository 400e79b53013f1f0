package repository

import (
	"context"

	"socialnet/internal/domain"
)

// NotificationRepository defines the interface for notification data operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id int) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Notification, error)
	Update(ctx context.Context, notification *domain.Notification) error
	Delete(ctx context.Context, id int) error
}

// AuditLogRepository defines the interface for audit log data operations.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	Search(ctx context.Context, q domain.SearchAuditLogRequest) ([]*domain.AuditLog, error)
}

// RequestLogRepository defines the interface for persisted HTTP request logs.
type RequestLogRepository interface {
	Create(ctx context.Context, entry *domain.RequestLog) error
	List(ctx context.Context, limit int) ([]*domain.RequestLog, error)
}
