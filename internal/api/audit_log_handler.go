package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// AuditLogHandler handles audit and request log endpoints.
type AuditLogHandler struct {
	auditLogService   *services.AuditLogService
	requestLogService *services.RequestLogService
}

// NewAuditLogHandler creates a new audit log handler.
func NewAuditLogHandler(auditLogService *services.AuditLogService, requestLogService *services.RequestLogService) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogService:   auditLogService,
		requestLogService: requestLogService,
	}
}

// RegisterRoutes registers audit log routes.
func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	audits := router.Group("/audit-logs")
	{
		audits.POST("", h.CreateAuditLog)
		audits.GET("", h.SearchAuditLogs)
	}
	router.GET("/request-logs", h.ListRequestLogs)
}

// CreateAuditLog records one audit entry.
// POST /api/audit-logs
func (h *AuditLogHandler) CreateAuditLog(c *gin.Context) {
	var req domain.CreateAuditLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid audit log payload", nil))
		return
	}
	if req.IPAddress == "" {
		req.IPAddress = c.ClientIP()
	}

	entry, err := h.auditLogService.Record(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, entry)
}

// SearchAuditLogs returns audit entries matching query filters.
// GET /api/audit-logs?entity=user&action=create&createdBy=1&from=2026-01-01&to=2026-12-31
func (h *AuditLogHandler) SearchAuditLogs(c *gin.Context) {
	var q domain.SearchAuditLogRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid audit log query", nil))
		return
	}

	entries, err := h.auditLogService.Search(c.Request.Context(), q)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, entries)
}

// ListRequestLogs returns the most recent persisted request log entries.
// GET /api/request-logs?limit=100
func (h *AuditLogHandler) ListRequestLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.requestLogService.List(c.Request.Context(), limit)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, entries)
}
