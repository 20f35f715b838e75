package notifier

import (
	"context"
	"time"
)

// PushJob is the payload consumed by the notification worker
type PushJob struct {
	MessageID   string         `json:"message_id"`
	UserID      string         `json:"user_id,omitempty"`
	TemplateKey string         `json:"template_key"`
	Language    string         `json:"language"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Icon        string         `json:"icon,omitempty"`
	Badge       string         `json:"badge,omitempty"`
	TTL         int            `json:"ttl"`
	Urgency     string         `json:"urgency"`
	Data        map[string]any `json:"data,omitempty"`
	Test        bool           `json:"test"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Publisher hands push jobs to the delivery pipeline
type Publisher interface {
	Publish(ctx context.Context, job *PushJob) error
	Name() string
}
