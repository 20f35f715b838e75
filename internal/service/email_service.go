package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beout/beout-admin/internal/cache"
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/mailer"
	"github.com/beout/beout-admin/internal/render"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"github.com/beout/beout-admin/pkg/translation"
	"go.uber.org/zap"
)

// Email settings that override the configured sender
const (
	settingFromEmail = "from_email"
	settingFromName  = "from_name"
)

// EmailConfig holds email service settings
type EmailConfig struct {
	FromEmail       string
	FromName        string
	DefaultLanguage string
	BulkDelay       time.Duration
	TemplateTTL     time.Duration
	// BulkBudget bounds one bulk run so it answers before the HTTP write
	// timeout. Zero leaves runs unbounded.
	BulkBudget time.Duration
}

// MaxBulkRecipients returns how many recipients fit in one bulk run given
// the pause between sends. Zero means no limit beyond request validation.
func (c EmailConfig) MaxBulkRecipients() int {
	if c.BulkDelay <= 0 || c.BulkBudget <= 0 {
		return 0
	}
	return 1 + int(c.BulkBudget/c.BulkDelay)
}

// emailService implements EmailService
type emailService struct {
	repo    repository.EmailRepository
	mailer  mailer.Mailer
	cache   cache.Cache
	config  EmailConfig
	metrics *telemetry.AdminMetrics
}

// NewEmailService creates a new EmailService
func NewEmailService(repo repository.EmailRepository, m mailer.Mailer, c cache.Cache, cfg EmailConfig, metrics *telemetry.AdminMetrics) EmailService {
	if c == nil {
		c = cache.Noop{}
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	return &emailService{
		repo:    repo,
		mailer:  m,
		cache:   c,
		config:  cfg,
		metrics: metricsOrNop(metrics),
	}
}

// ListTemplates lists templates, optionally for one language
func (s *emailService) ListTemplates(ctx context.Context, query *dto.ListEmailTemplatesQuery) ([]*domain.EmailTemplate, error) {
	language := ""
	if query.Language != "" && query.Language != "all" {
		lang, err := translation.NormalizeLanguage(query.Language)
		if err != nil {
			return nil, invalid("Invalid language")
		}
		language = lang
	}
	return s.repo.ListTemplates(ctx, language)
}

// GetTemplate retrieves a template by ID
func (s *emailService) GetTemplate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

// CreateTemplate creates a template
func (s *emailService) CreateTemplate(ctx context.Context, actor domain.Actor, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error) {
	t, err := s.templateFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.CreatedBy = actor.UserID
	t.UpdatedBy = actor.UserID

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, err
	}
	s.invalidateTemplates(ctx)

	logger.InfoCtx(ctx, "email template created",
		zap.String("template_id", t.ID),
		zap.String("name", t.Name),
		zap.String("language", t.Language),
	)
	return t, nil
}

// UpdateTemplate replaces a template
func (s *emailService) UpdateTemplate(ctx context.Context, actor domain.Actor, id string, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error) {
	t, err := s.templateFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.UpdatedBy = actor.UserID

	updated, err := s.repo.UpdateTemplate(ctx, t)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, err
	}
	if !updated {
		return nil, ErrTemplateNotFound
	}
	s.invalidateTemplates(ctx)
	return t, nil
}

// DeleteTemplate removes a template
func (s *emailService) DeleteTemplate(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	s.invalidateTemplates(ctx)
	return nil
}

// SendTest renders a template with the given variables and sends it to one address
func (s *emailService) SendTest(ctx context.Context, actor domain.Actor, id string, req *dto.TestEmailRequest) (string, error) {
	t, err := s.GetTemplate(ctx, id)
	if err != nil {
		return "", err
	}

	msg, err := buildMessage(t, s.sender(ctx), req.Email, render.Merge(t.Variables, req.Variables))
	if err != nil {
		return "", err
	}
	msg.Subject = "[TEST] " + msg.Subject

	messageID, err := s.deliver(ctx, t, msg)
	if err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "test email sent",
		zap.String("template", t.Name),
		zap.String("to", req.Email),
		zap.String("admin_user_id", actor.UserID),
	)
	return messageID, nil
}

// ListLogs lists delivery attempts
func (s *emailService) ListLogs(ctx context.Context, query *dto.ListEmailLogsQuery) ([]*domain.EmailLog, int64, error) {
	query.SetDefaults()
	return s.repo.ListLogs(ctx, query.ToFilter())
}

// ListSettings lists email settings
func (s *emailService) ListSettings(ctx context.Context) ([]*domain.EmailSetting, error) {
	return s.repo.ListSettings(ctx)
}

// UpdateSetting changes one setting value
func (s *emailService) UpdateSetting(ctx context.Context, actor domain.Actor, key string, req *dto.UpdateEmailSettingRequest) (*domain.EmailSetting, error) {
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, invalid("Value is required")
	}

	setting, err := s.repo.UpdateSetting(ctx, key, value, actor.UserID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrSettingNotFound
	}
	return setting, nil
}

// BulkSend sends one template to many recipients, pausing between sends.
// Cancelling ctx or running past the bulk budget stops the run; unsent
// recipients are reported as failed.
func (s *emailService) BulkSend(ctx context.Context, req *dto.BulkSendRequest) (*dto.BulkSendResponse, error) {
	var resp *dto.BulkSendResponse
	err := telemetry.Trace(ctx, "email.bulk_send", func(ctx context.Context) (err error) {
		resp, err = s.bulkSend(ctx, req)
		return err
	}, telemetry.TemplateAttr(req.TemplateName))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *emailService) bulkSend(ctx context.Context, req *dto.BulkSendRequest) (*dto.BulkSendResponse, error) {
	if limit := s.config.MaxBulkRecipients(); limit > 0 && len(req.Recipients) > limit {
		return nil, invalid(fmt.Sprintf("At most %d recipients per bulk send", limit))
	}

	language := ""
	if req.Language != "" {
		lang, err := translation.NormalizeLanguage(req.Language)
		if err != nil {
			return nil, invalid("Invalid language")
		}
		language = lang
	}

	t, err := s.findTemplate(ctx, req.TemplateName, language)
	if err != nil {
		return nil, err
	}

	if s.config.BulkBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.BulkBudget)
		defer cancel()
	}

	from := s.sender(ctx)
	results := make([]dto.BulkSendResult, 0, len(req.Recipients))
	summary := dto.BulkSendSummary{Total: len(req.Recipients)}

	for i, recipient := range req.Recipients {
		if i > 0 && s.config.BulkDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.config.BulkDelay):
			}
		}
		if ctx.Err() != nil {
			for _, rest := range req.Recipients[i:] {
				results = append(results, dto.BulkSendResult{Email: rest, Error: "cancelled"})
				summary.Failed++
			}
			break
		}

		result := dto.BulkSendResult{Email: recipient}
		vars := render.Merge(render.Merge(t.Variables, req.Variables), map[string]any{"email": recipient})
		msg, err := buildMessage(t, from, recipient, vars)
		if err == nil {
			result.MessageID, err = s.deliver(ctx, t, msg)
		}
		if err != nil {
			result.Error = err.Error()
			summary.Failed++
		} else {
			result.Success = true
			summary.Sent++
		}
		results = append(results, result)
	}

	logger.InfoCtx(ctx, "bulk email send finished",
		zap.String("template", t.Name),
		zap.String("language", t.Language),
		zap.Int("total", summary.Total),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
	)

	return &dto.BulkSendResponse{
		Message: fmt.Sprintf("Bulk send completed: %d sent, %d failed", summary.Sent, summary.Failed),
		Results: results,
		Summary: summary,
	}, nil
}

// findTemplate looks up an active template, falling back to the default
// language when the requested one has none
func (s *emailService) findTemplate(ctx context.Context, name, language string) (*domain.EmailTemplate, error) {
	if language == "" {
		language = s.config.DefaultLanguage
	}

	t, err := s.lookupTemplate(ctx, name, language)
	if err != nil {
		return nil, err
	}
	if t == nil && language != s.config.DefaultLanguage {
		t, err = s.lookupTemplate(ctx, name, s.config.DefaultLanguage)
		if err != nil {
			return nil, err
		}
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (s *emailService) lookupTemplate(ctx context.Context, name, language string) (*domain.EmailTemplate, error) {
	key := cache.EmailTemplateKey(name, language)
	cached := &domain.EmailTemplate{}
	if err := s.cache.GetJSON(ctx, key, cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.WarnCtx(ctx, "email template cache read failed", zap.String("key", key), zap.Error(err))
	}

	t, err := s.repo.FindActiveTemplate(ctx, name, language)
	if err != nil {
		return nil, err
	}
	if t != nil && s.config.TemplateTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, t, s.config.TemplateTTL); err != nil {
			logger.WarnCtx(ctx, "email template cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return t, nil
}

// fromAddress is the sender of outgoing mail
type fromAddress struct {
	email string
	name  string
}

func buildMessage(t *domain.EmailTemplate, from fromAddress, to string, vars map[string]any) (*mailer.Message, error) {
	subject, err := render.Text(t.Subject, vars)
	if err != nil {
		return nil, invalid(err.Error())
	}
	body, err := render.HTML(t.Body, vars)
	if err != nil {
		return nil, invalid(err.Error())
	}

	return &mailer.Message{
		FromEmail: from.email,
		FromName:  from.name,
		To:        to,
		Subject:   subject,
		HTML:      body,
	}, nil
}

// sender returns the from address, preferring values saved in email settings
func (s *emailService) sender(ctx context.Context) fromAddress {
	from := fromAddress{email: s.config.FromEmail, name: s.config.FromName}
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "failed to read email settings", zap.Error(err))
		return from
	}
	for _, setting := range settings {
		switch setting.SettingKey {
		case settingFromEmail:
			if setting.SettingValue != "" {
				from.email = setting.SettingValue
			}
		case settingFromName:
			if setting.SettingValue != "" {
				from.name = setting.SettingValue
			}
		}
	}
	return from
}

// deliver sends msg and records the attempt in the email log
func (s *emailService) deliver(ctx context.Context, t *domain.EmailTemplate, msg *mailer.Message) (string, error) {
	messageID, sendErr := s.mailer.Send(ctx, msg)

	entry := &domain.EmailLog{
		Recipient:    msg.To,
		TemplateName: t.Name,
		Subject:      msg.Subject,
		Status:       domain.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = domain.EmailStatusFailed
		entry.ErrorMessage = sendErr.Error()
	}
	if err := s.repo.CreateLog(context.WithoutCancel(ctx), entry); err != nil {
		logger.WarnCtx(ctx, "failed to record email log", zap.String("to", msg.To), zap.Error(err))
	}

	s.metrics.EmailsSent.Inc(ctx, telemetry.TemplateAttr(t.Name), telemetry.OutcomeAttr(sendErr == nil))
	if sendErr != nil {
		logger.WarnCtx(ctx, "email delivery failed",
			zap.String("to", msg.To),
			zap.String("template", t.Name),
			zap.String("mailer", s.mailer.Name()),
			zap.Error(sendErr),
		)
		return "", sendErr
	}
	return messageID, nil
}

func (s *emailService) templateFromRequest(req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error) {
	t := req.ToTemplate()
	lang, err := translation.NormalizeLanguage(t.Language)
	if err != nil {
		return nil, invalid("Invalid language")
	}
	t.Language = lang
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, invalid("Name is required")
	}
	if _, err := render.Text(t.Subject, nil); err != nil {
		return nil, invalid("Subject is not a valid template")
	}
	if _, err := render.HTML(t.Body, nil); err != nil {
		return nil, invalid("Body is not a valid template")
	}
	return t, nil
}

func (s *emailService) invalidateTemplates(ctx context.Context) {
	if _, err := s.cache.DeletePattern(ctx, cache.EmailTemplatesKey); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate email template cache", zap.Error(err))
	}
}
