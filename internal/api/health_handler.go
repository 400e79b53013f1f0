package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketbase/dbx"
)

// HealthHandler reports process and database health.
type HealthHandler struct {
	db      *dbx.DB
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *dbx.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// RegisterRoutes registers health routes.
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

// Health reports liveness.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready reports readiness including database connectivity.
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.DB().PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
