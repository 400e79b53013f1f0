package domain

import "time"

// RequestLog is one persisted HTTP request record, written by the request
// logging middleware.
type RequestLog struct {
	RequestLogID int       `db:"request_log_id" json:"requestLogId"`
	Endpoint     string    `db:"endpoint" json:"endpoint"`
	Method       string    `db:"method" json:"method"`
	StatusCode   int       `db:"status_code" json:"statusCode"`
	ResponseTime int       `db:"response_time" json:"responseTime"`
	IPAddress    string    `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent    string    `db:"user_agent" json:"userAgent,omitempty"`
	Username     string    `db:"username" json:"username,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
