package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the handler for GET /api/health.
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	overall, dbStatus := "OK", "connected"
	status := http.StatusOK
	if err := h.DB.PingContext(ctx); err != nil {
		h.Log.Warn().Err(err).Msg("health check: database ping failed")
		overall, dbStatus = "DEGRADED", "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
		"email":     gin.H{"configured": h.Mailer.Enabled()},
	})
}
