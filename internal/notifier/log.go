package notifier

import (
	"context"
	"sync"

	"github.com/beout/beout-admin/pkg/logger"
	"go.uber.org/zap"
)

// LogPublisher logs push jobs instead of publishing them
type LogPublisher struct {
	mu   sync.Mutex
	jobs []*PushJob
}

// NewLogPublisher creates a new LogPublisher
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Name returns the publisher name
func (p *LogPublisher) Name() string {
	return "log"
}

// Publish records job
func (p *LogPublisher) Publish(ctx context.Context, job *PushJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.InfoCtx(ctx, "push job not published, no broker configured",
		zap.String("message_id", job.MessageID),
		zap.String("template_key", job.TemplateKey),
		zap.String("title", job.Title),
	)

	p.mu.Lock()
	p.jobs = append(p.jobs, job)
	p.mu.Unlock()
	return nil
}

// Jobs returns the published jobs
func (p *LogPublisher) Jobs() []*PushJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*PushJob, len(p.jobs))
	copy(out, p.jobs)
	return out
}
