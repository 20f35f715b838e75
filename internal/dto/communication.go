package dto

import (
	"regexp"

	"github.com/beout/beout-admin/internal/domain"
)

var templateKeyPattern = regexp.MustCompile(`^[a-z0-9_.-]+$`)

// EmailTemplateRequest represents an email template create or update
type EmailTemplateRequest struct {
	Name        string         `json:"name" binding:"required,max=100"`
	Language    string         `json:"language" binding:"required,max=10"`
	Subject     string         `json:"subject" binding:"required,max=500"`
	Body        string         `json:"body" binding:"required"`
	Description string         `json:"description" binding:"omitempty,max=500"`
	Variables   map[string]any `json:"variables"`
	IsActive    *bool          `json:"is_active"`
}

// ToTemplate converts the request to a domain template
func (r *EmailTemplateRequest) ToTemplate() *domain.EmailTemplate {
	t := &domain.EmailTemplate{
		Name:        r.Name,
		Language:    r.Language,
		Subject:     r.Subject,
		Body:        r.Body,
		Description: r.Description,
		Variables:   r.Variables,
		IsActive:    true,
	}
	if t.Variables == nil {
		t.Variables = map[string]any{}
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	return t
}

// ListEmailTemplatesQuery represents query parameters for the template list
type ListEmailTemplatesQuery struct {
	Language string `form:"language" binding:"omitempty,max=10"`
}

// TestEmailRequest represents a test send of a template
type TestEmailRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	Variables map[string]any `json:"variables"`
	Language  string         `json:"language" binding:"omitempty,max=10"`
}

// ListEmailLogsQuery represents query parameters for email logs
type ListEmailLogsQuery struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Status       string `form:"status" binding:"omitempty,oneof=sent failed"`
	TemplateName string `form:"template_name" binding:"omitempty,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListEmailLogsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// ToFilter converts the query to a repository filter
func (q *ListEmailLogsQuery) ToFilter() domain.EmailLogFilter {
	return domain.EmailLogFilter{
		Status:       q.Status,
		TemplateName: q.TemplateName,
		Page:         q.Page,
		Limit:        q.Limit,
	}
}

// UpdateEmailSettingRequest represents a new value for a setting
type UpdateEmailSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// BulkSendRequest represents a templated send to many recipients
type BulkSendRequest struct {
	TemplateName string         `json:"template_name" binding:"required"`
	Recipients   []string       `json:"recipients" binding:"required,min=1,max=1000,dive,email"`
	Variables    map[string]any `json:"variables"`
	Language     string         `json:"language" binding:"omitempty,max=10"`
}

// BulkSendResult is the outcome for one recipient
type BulkSendResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// BulkSendSummary counts bulk send outcomes
type BulkSendSummary struct {
	Total  int `json:"total"`
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// BulkSendResponse represents the result of a bulk send
type BulkSendResponse struct {
	Message string           `json:"message"`
	Results []BulkSendResult `json:"results"`
	Summary BulkSendSummary  `json:"summary"`
}

// PushTemplateRequest represents a push template create or update
type PushTemplateRequest struct {
	Key      string `json:"key" binding:"required,max=100"`
	Language string `json:"language" binding:"required,max=10"`
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body" binding:"required,max=1000"`
	Icon     string `json:"icon" binding:"omitempty,max=500"`
	IsActive *bool  `json:"is_active"`
}

// Validate checks the template key format
func (r *PushTemplateRequest) Validate() (bool, string) {
	if !templateKeyPattern.MatchString(r.Key) {
		return false, "Key must contain only lowercase letters, numbers, dots, underscores and hyphens"
	}
	return true, ""
}

// ToTemplate converts the request to a domain template
func (r *PushTemplateRequest) ToTemplate() *domain.PushTemplate {
	t := &domain.PushTemplate{
		Key:      r.Key,
		Language: r.Language,
		Title:    r.Title,
		Body:     r.Body,
		Icon:     r.Icon,
		IsActive: true,
	}
	if r.IsActive != nil {
		t.IsActive = *r.IsActive
	}
	return t
}

// ListPushTemplatesQuery represents query parameters for push templates
type ListPushTemplatesQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=255"`
	Language string `form:"language" binding:"omitempty,max=10"`
}

// UpdatePushSettingsRequest represents a partial settings update
type UpdatePushSettingsRequest struct {
	DefaultIcon  *string `json:"default_icon" binding:"omitempty,max=500"`
	DefaultBadge *string `json:"default_badge" binding:"omitempty,max=500"`
	TTLSeconds   *int    `json:"ttl" binding:"omitempty,min=0,max=2419200"`
	Urgency      *string `json:"urgency"`
	Enabled      *bool   `json:"enabled"`
}

// Validate validates that at least one field is provided for update
func (r *UpdatePushSettingsRequest) Validate() (bool, string) {
	if r.DefaultIcon == nil && r.DefaultBadge == nil && r.TTLSeconds == nil && r.Urgency == nil && r.Enabled == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Urgency != nil && !domain.IsValidUrgency(*r.Urgency) {
		return false, "Urgency must be one of very-low, low, normal, high"
	}
	return true, ""
}

// TestPushRequest represents a test dispatch of a push template
type TestPushRequest struct {
	TemplateKey string         `json:"template_key" binding:"required"`
	Language    string         `json:"language" binding:"omitempty,max=10"`
	Data        map[string]any `json:"data"`
	UserID      string         `json:"user_id" binding:"omitempty"`
}

// TestPushResponse represents the rendered notification that was queued
type TestPushResponse struct {
	MessageID string         `json:"message_id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Icon      string         `json:"icon"`
	Badge     string         `json:"badge"`
	Language  string         `json:"language"`
	Data      map[string]any `json:"data"`
}

// ListPushLogsQuery represents query parameters for push logs
type ListPushLogsQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Status      string `form:"status" binding:"omitempty,max=50"`
	TemplateKey string `form:"template_key" binding:"omitempty,max=100"`
}

// SetDefaults sets default values for query parameters
func (q *ListPushLogsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// ToFilter converts the query to a repository filter
func (q *ListPushLogsQuery) ToFilter() domain.PushLogFilter {
	return domain.PushLogFilter{
		Status:      q.Status,
		TemplateKey: q.TemplateKey,
		Page:        q.Page,
		Limit:       q.Limit,
	}
}
