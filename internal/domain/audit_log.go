package domain

import "time"

// AuditLog records a domain-level action for later inspection.
type AuditLog struct {
	AuditLogID int       `db:"audit_log_id" json:"auditLogId"`
	Entity     string    `db:"entity" json:"entity"`
	Action     string    `db:"action" json:"action"`
	Detail     string    `db:"detail" json:"detail,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress,omitempty"`
	CreatedBy  int       `db:"created_by" json:"createdBy"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// CreateAuditLogRequest carries the data needed to record an audit entry.
type CreateAuditLogRequest struct {
	Entity    string `json:"entity" binding:"required"`
	Action    string `json:"action" binding:"required"`
	Detail    string `json:"detail,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
	CreatedBy int    `json:"createdBy" binding:"required"`
}

// SearchAuditLogRequest filters audit entries. Zero values mean "no filter".
type SearchAuditLogRequest struct {
	Entity    string     `form:"entity"`
	Action    string     `form:"action"`
	CreatedBy int        `form:"createdBy"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}
