package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"socialnet/internal/domain"
)

// sqliteNotificationRepository implements NotificationRepository on top of dbx/SQLite.
type sqliteNotificationRepository struct {
	db *dbx.DB
}

// NewSQLiteNotificationRepository creates a new SQLite-backed notification repository.
func NewSQLiteNotificationRepository(db *dbx.DB) NotificationRepository {
	return &sqliteNotificationRepository{db: db}
}

func (r *sqliteNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.CreatedAt = time.Now().UTC()
	n.IsActive = true

	res, err := r.db.Insert("notifications", dbx.Params{
		"title":                n.Title,
		"message":              n.Message,
		"is_read":              n.IsRead,
		"user_id":              n.UserID,
		"is_active":            n.IsActive,
		"created_by":           n.CreatedBy,
		"notification_channel": n.Channel,
		"notification_type":    n.Type,
		"created_at":           n.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated notification id: %w", err)
	}
	n.NotificationID = int(id)
	return nil
}

func (r *sqliteNotificationRepository) GetByID(ctx context.Context, id int) (*domain.Notification, error) {
	var n domain.Notification
	err := r.db.Select().From("notifications").Where(dbx.HashExp{"notification_id": id}).WithContext(ctx).One(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("NOTIFICATION_NOT_FOUND", "Notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query notification %d: %w", id, err)
	}
	return &n, nil
}

func (r *sqliteNotificationRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := r.db.Select().From("notifications").
		Where(dbx.HashExp{"user_id": userID, "is_active": true}).
		OrderBy("created_at DESC").
		WithContext(ctx).
		All(&notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %d: %w", userID, err)
	}
	return notifications, nil
}

func (r *sqliteNotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.Update("notifications", dbx.Params{
		"title":     n.Title,
		"message":   n.Message,
		"is_read":   n.IsRead,
		"is_active": n.IsActive,
	}, dbx.HashExp{"notification_id": n.NotificationID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to update notification %d: %w", n.NotificationID, err)
	}
	return nil
}

func (r *sqliteNotificationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Delete("notifications", dbx.HashExp{"notification_id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, err)
	}
	return nil
}
