package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// PushHandler handles push template and dispatch HTTP requests
type PushHandler struct {
	pushService service.PushService
}

// NewPushHandler creates a new PushHandler
func NewPushHandler(pushService service.PushService) *PushHandler {
	return &PushHandler{pushService: pushService}
}

// ListTemplates lists push templates
// GET /api/admin/push-templates
func (h *PushHandler) ListTemplates(c *gin.Context) {
	var query dto.ListPushTemplatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	page, err := h.pushService.ListTemplates(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(page.Items, page.Page, page.Limit, int64(page.Total)))
}

// GetTemplate returns a push template
// GET /api/admin/push-templates/:id
func (h *PushHandler) GetTemplate(c *gin.Context) {
	template, err := h.pushService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(template))
}

// CreateTemplate creates a push template
// POST /api/admin/push-templates
func (h *PushHandler) CreateTemplate(c *gin.Context) {
	var req dto.PushTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_TEMPLATE_KEY", msg))
		return
	}

	template, err := h.pushService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "push_template", template.ID)
	middleware.SetAuditDescription(c, "Created push template "+template.Key+" ("+template.Language+")")
	c.JSON(http.StatusCreated, response.Success(template))
}

// UpdateTemplate updates a push template
// PUT /api/admin/push-templates/:id
func (h *PushHandler) UpdateTemplate(c *gin.Context) {
	var req dto.PushTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_TEMPLATE_KEY", msg))
		return
	}

	template, err := h.pushService.UpdateTemplate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "push_template", template.ID)
	c.JSON(http.StatusOK, response.Success(template))
}

// DeleteTemplate deletes a push template
// DELETE /api/admin/push-templates/:id
func (h *PushHandler) DeleteTemplate(c *gin.Context) {
	if err := h.pushService.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "push_template", c.Param("id"))
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Template deleted successfully"}))
}

// Settings returns the push dispatch settings
// GET /api/admin/push-notifications/settings
func (h *PushHandler) Settings(c *gin.Context) {
	settings, err := h.pushService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(settings))
}

// UpdateSettings applies a partial settings update
// PUT /api/admin/push-notifications/settings
func (h *PushHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdatePushSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_UPDATE", msg))
		return
	}

	settings, err := h.pushService.UpdateSettings(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "push_settings", "")
	c.JSON(http.StatusOK, response.Success(settings))
}

// Logs lists push dispatches
// GET /api/admin/push-notifications/logs
func (h *PushHandler) Logs(c *gin.Context) {
	var query dto.ListPushLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	logs, total, err := h.pushService.ListLogs(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(logs, query.Page, query.Limit, total))
}

// SendTest renders a template and queues a test notification
// POST /api/admin/push-notifications/test
func (h *PushHandler) SendTest(c *gin.Context) {
	var req dto.TestPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.pushService.SendTest(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "push_template", req.TemplateKey)
	middleware.SetAuditMetadata(c, map[string]interface{}{"message_id": result.MessageID})
	c.JSON(http.StatusOK, response.Success(result))
}
