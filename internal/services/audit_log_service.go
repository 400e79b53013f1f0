package services

import (
	"context"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// AuditLogService records and queries domain-level audit entries.
type AuditLogService struct {
	auditLogs repository.AuditLogRepository
}

// NewAuditLogService creates a new audit log service.
func NewAuditLogService(auditLogs repository.AuditLogRepository) *AuditLogService {
	return &AuditLogService{auditLogs: auditLogs}
}

// Record writes one audit entry.
func (s *AuditLogService) Record(ctx context.Context, req *domain.CreateAuditLogRequest) (*domain.AuditLog, error) {
	entry := &domain.AuditLog{
		Entity:    req.Entity,
		Action:    req.Action,
		Detail:    req.Detail,
		IPAddress: req.IPAddress,
		CreatedBy: req.CreatedBy,
	}
	if err := s.auditLogs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Search returns audit entries matching the given filters, newest first.
func (s *AuditLogService) Search(ctx context.Context, q domain.SearchAuditLogRequest) ([]*domain.AuditLog, error) {
	return s.auditLogs.Search(ctx, q)
}

// RequestLogService reads the persisted HTTP request log.
type RequestLogService struct {
	requestLogs repository.RequestLogRepository
}

// NewRequestLogService creates a new request log service.
func NewRequestLogService(requestLogs repository.RequestLogRepository) *RequestLogService {
	return &RequestLogService{requestLogs: requestLogs}
}

// List returns the most recent request log entries.
func (s *RequestLogService) List(ctx context.Context, limit int) ([]*domain.RequestLog, error) {
	return s.requestLogs.List(ctx, limit)
}
