package services

import (
	"context"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// NotificationService handles notification business logic.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository) *NotificationService {
	return &NotificationService{notifications: notifications, users: users}
}

// CreateNotification creates a notification for an existing account.
func (s *NotificationService) CreateNotification(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.Notification, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	n := &domain.Notification{
		Title:     req.Title,
		Message:   req.Message,
		UserID:    req.UserID,
		CreatedBy: req.CreatedBy,
		Channel:   req.Channel,
		Type:      req.Type,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// GetNotification retrieves a notification by id.
func (s *NotificationService) GetNotification(ctx context.Context, id int) (*domain.Notification, error) {
	return s.notifications.GetByID(ctx, id)
}

// ListNotificationsByUser retrieves the active notifications of one account.
func (s *NotificationService) ListNotificationsByUser(ctx context.Context, userID int) ([]*domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

// UpdateNotification applies a partial update to a notification.
func (s *NotificationService) UpdateNotification(ctx context.Context, id int, req *domain.UpdateNotificationRequest) (*domain.Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.IsRead != nil {
		n.IsRead = *req.IsRead
	}
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}

	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkRead marks a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) (*domain.Notification, error) {
	read := true
	return s.UpdateNotification(ctx, id, &domain.UpdateNotificationRequest{IsRead: &read})
}

// DeleteNotification removes a notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, id int) error {
	if _, err := s.notifications.GetByID(ctx, id); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}
