package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard counters
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the dashboard counters
// GET /api/admin/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(stats))
}
