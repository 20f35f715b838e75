package mailer

import (
	"context"
	"sync"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogMailer writes emails to the log instead of sending them.
// It keeps the last messages for inspection.
type LogMailer struct {
	mu   sync.Mutex
	sent []*Message
	// FailFor makes Send fail for the given recipients
	FailFor map[string]error
}

// NewLogMailer creates a new LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Name returns the mailer name
func (m *LogMailer) Name() string {
	return "log"
}

// Send logs msg and returns a generated message ID
func (m *LogMailer) Send(ctx context.Context, msg *Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.FailFor[msg.To]; ok {
		return "", err
	}

	id := "log-" + uuid.New().String()
	logger.InfoCtx(ctx, "email not sent, no provider configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", id),
	)

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return id, nil
}

// Sent returns the messages passed to Send
func (m *LogMailer) Sent() []*Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Message, len(m.sent))
	copy(out, m.sent)
	return out
}
