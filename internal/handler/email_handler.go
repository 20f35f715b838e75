package handler

import (
	"net/http"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// EmailHandler handles email template and delivery HTTP requests
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// ListTemplates lists email templates
// GET /api/emails/templates
func (h *EmailHandler) ListTemplates(c *gin.Context) {
	var query dto.ListEmailTemplatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	templates, err := h.emailService.ListTemplates(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(templates))
}

// GetTemplate returns an email template
// GET /api/emails/templates/:id
func (h *EmailHandler) GetTemplate(c *gin.Context) {
	template, err := h.emailService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(template))
}

// CreateTemplate creates an email template
// POST /api/emails/templates
func (h *EmailHandler) CreateTemplate(c *gin.Context) {
	var req dto.EmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	template, err := h.emailService.CreateTemplate(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_template", template.ID)
	middleware.SetAuditDescription(c, "Created email template "+template.Name+" ("+template.Language+")")
	c.JSON(http.StatusCreated, response.Success(template))
}

// UpdateTemplate updates an email template
// PUT /api/emails/templates/:id
func (h *EmailHandler) UpdateTemplate(c *gin.Context) {
	var req dto.EmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	template, err := h.emailService.UpdateTemplate(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_template", template.ID)
	c.JSON(http.StatusOK, response.Success(template))
}

// DeleteTemplate deletes an email template
// DELETE /api/emails/templates/:id
func (h *EmailHandler) DeleteTemplate(c *gin.Context) {
	if err := h.emailService.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_template", c.Param("id"))
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Template deleted successfully"}))
}

// SendTest renders a template and sends it to one address
// POST /api/emails/templates/:id/test
func (h *EmailHandler) SendTest(c *gin.Context) {
	var req dto.TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	messageID, err := h.emailService.SendTest(c.Request.Context(), actorFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_template", c.Param("id"))
	middleware.SetAuditMetadata(c, map[string]interface{}{"recipient": req.Email})
	c.JSON(http.StatusOK, response.Success(gin.H{
		"message":    "Test email sent to " + req.Email,
		"message_id": messageID,
	}))
}

// Logs lists delivery logs
// GET /api/emails/logs
func (h *EmailHandler) Logs(c *gin.Context) {
	var query dto.ListEmailLogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	logs, total, err := h.emailService.ListLogs(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paginated(logs, query.Page, query.Limit, total))
}

// Settings lists email settings
// GET /api/emails/settings
func (h *EmailHandler) Settings(c *gin.Context) {
	settings, err := h.emailService.ListSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(settings))
}

// UpdateSetting sets the value of one setting
// PUT /api/emails/settings/:key
func (h *EmailHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateEmailSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	setting, err := h.emailService.UpdateSetting(c.Request.Context(), actorFrom(c), c.Param("key"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_setting", setting.SettingKey)
	c.JSON(http.StatusOK, response.Success(setting))
}

// BulkSend sends a template to many recipients
// POST /api/emails/bulk-send
func (h *EmailHandler) BulkSend(c *gin.Context) {
	var req dto.BulkSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.emailService.BulkSend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuditTarget(c, "email_template", req.TemplateName)
	middleware.SetAuditMetadata(c, map[string]interface{}{
		"total":  result.Summary.Total,
		"sent":   result.Summary.Sent,
		"failed": result.Summary.Failed,
	})
	c.JSON(http.StatusOK, response.Success(result))
}
