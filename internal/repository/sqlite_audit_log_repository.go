package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"socialnet/internal/domain"
)

// sqliteAuditLogRepository implements AuditLogRepository on top of dbx/SQLite.
type sqliteAuditLogRepository struct {
	db *dbx.DB
}

// NewSQLiteAuditLogRepository creates a new SQLite-backed audit log repository.
func NewSQLiteAuditLogRepository(db *dbx.DB) AuditLogRepository {
	return &sqliteAuditLogRepository{db: db}
}

func (r *sqliteAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()

	res, err := r.db.Insert("audit_logs", dbx.Params{
		"entity":     entry.Entity,
		"action":     entry.Action,
		"detail":     entry.Detail,
		"ip_address": entry.IPAddress,
		"created_by": entry.CreatedBy,
		"created_at": entry.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated audit log id: %w", err)
	}
	entry.AuditLogID = int(id)
	return nil
}

func (r *sqliteAuditLogRepository) Search(ctx context.Context, q domain.SearchAuditLogRequest) ([]*domain.AuditLog, error) {
	query := r.db.Select().From("audit_logs")

	conds := dbx.HashExp{}
	if q.Entity != "" {
		conds["entity"] = q.Entity
	}
	if q.Action != "" {
		conds["action"] = q.Action
	}
	if q.CreatedBy != 0 {
		conds["created_by"] = q.CreatedBy
	}
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	if q.From != nil {
		query = query.AndWhere(dbx.NewExp("created_at >= {:from}", dbx.Params{"from": *q.From}))
	}
	if q.To != nil {
		query = query.AndWhere(dbx.NewExp("created_at <= {:to}", dbx.Params{"to": *q.To}))
	}

	var entries []*domain.AuditLog
	if err := query.OrderBy("created_at DESC").WithContext(ctx).All(&entries); err != nil {
		return nil, fmt.Errorf("failed to search audit logs: %w", err)
	}
	return entries, nil
}

// sqliteRequestLogRepository implements RequestLogRepository on top of dbx/SQLite.
type sqliteRequestLogRepository struct {
	db *dbx.DB
}

// NewSQLiteRequestLogRepository creates a new SQLite-backed request log repository.
func NewSQLiteRequestLogRepository(db *dbx.DB) RequestLogRepository {
	return &sqliteRequestLogRepository{db: db}
}

func (r *sqliteRequestLogRepository) Create(ctx context.Context, entry *domain.RequestLog) error {
	entry.CreatedAt = time.Now().UTC()

	res, err := r.db.Insert("request_logs", dbx.Params{
		"endpoint":      entry.Endpoint,
		"method":        entry.Method,
		"status_code":   entry.StatusCode,
		"response_time": entry.ResponseTime,
		"ip_address":    entry.IPAddress,
		"user_agent":    entry.UserAgent,
		"username":      entry.Username,
		"created_at":    entry.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated request log id: %w", err)
	}
	entry.RequestLogID = int(id)
	return nil
}

func (r *sqliteRequestLogRepository) List(ctx context.Context, limit int) ([]*domain.RequestLog, error) {
	if limit < 1 {
		limit = 100
	}
	var entries []*domain.RequestLog
	err := r.db.Select().From("request_logs").
		OrderBy("created_at DESC").
		Limit(int64(limit)).
		WithContext(ctx).
		All(&entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list request logs: %w", err)
	}
	return entries, nil
}
