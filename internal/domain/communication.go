package domain

import "time"

// EmailTemplate is a stored email with {{var}} placeholders
type EmailTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Language    string         `json:"language"`
	Subject     string         `json:"subject"`
	Body        string         `json:"body"`
	Description string         `json:"description"`
	Variables   map[string]any `json:"variables"`
	IsActive    bool           `json:"is_active"`
	CreatedBy   string         `json:"created_by,omitempty"`
	UpdatedBy   string         `json:"updated_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Email delivery statuses
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog records one delivery attempt
type EmailLog struct {
	ID           string    `json:"id"`
	Recipient    string    `json:"recipient"`
	TemplateName string    `json:"template_name"`
	Subject      string    `json:"subject"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmailLogFilter holds list filters for email logs
type EmailLogFilter struct {
	Status       string
	TemplateName string
	Page         int
	Limit        int
}

// EmailSetting is a key/value email configuration entry
type EmailSetting struct {
	ID           string    `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description,omitempty"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PushTemplate is a stored push notification text for one language
type PushTemplate struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Language  string    `json:"language"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Icon      string    `json:"icon,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PushSettings holds delivery defaults for push notifications
type PushSettings struct {
	DefaultIcon  string    `json:"default_icon"`
	DefaultBadge string    `json:"default_badge"`
	TTLSeconds   int       `json:"ttl"`
	Urgency      string    `json:"urgency"`
	Enabled      bool      `json:"enabled"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPushSettings returns the settings used until an admin saves some
func DefaultPushSettings() PushSettings {
	return PushSettings{
		DefaultIcon:  "/icons/notification-icon.png",
		DefaultBadge: "/icons/badge-icon.png",
		TTLSeconds:   24 * 60 * 60,
		Urgency:      "normal",
		Enabled:      true,
	}
}

// IsValidUrgency reports whether u is a web push urgency
func IsValidUrgency(u string) bool {
	switch u {
	case "very-low", "low", "normal", "high":
		return true
	}
	return false
}

// PushLog records a push notification dispatch
type PushLog struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id,omitempty"`
	TemplateKey string         `json:"template_key"`
	Channel     string         `json:"channel"`
	Recipient   string         `json:"recipient"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	SentAt      time.Time      `json:"sent_at"`
}

// PushLogFilter holds list filters for push logs
type PushLogFilter struct {
	Status      string
	TemplateKey string
	Page        int
	Limit       int
}
