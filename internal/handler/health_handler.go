package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// Pinger is a dependency whose connectivity can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports liveness and readiness
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler. Nil checks are ignored.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{checks: active}
}

// Health reports that the process is up
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready pings every dependency
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ready := true
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, response.ErrorWithDetails(
			response.ErrCodeServiceUnavailable, "Service not ready", status))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ready", "checks": status}))
}
