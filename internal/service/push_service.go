package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/notifier"
	"github.com/beout/beout-admin/internal/render"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/listing"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"github.com/beout/beout-admin/pkg/translation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Push log statuses
const (
	PushStatusTestSent = "test_sent"
	PushStatusFailed   = "failed"
	pushChannel        = "push"
)

// pushService implements PushService
type pushService struct {
	repo            repository.PushRepository
	publisher       notifier.Publisher
	defaultLanguage string
	metrics         *telemetry.AdminMetrics
}

// NewPushService creates a new PushService. Template lookups fall back to
// defaultLanguage when the requested language has no active template.
func NewPushService(repo repository.PushRepository, publisher notifier.Publisher, defaultLanguage string, metrics *telemetry.AdminMetrics) PushService {
	if defaultLanguage == "" {
		defaultLanguage = "fr"
	}
	return &pushService{
		repo:            repo,
		publisher:       publisher,
		defaultLanguage: defaultLanguage,
		metrics:         metricsOrNop(metrics),
	}
}

// ListTemplates searches templates by key, title or body
func (s *pushService) ListTemplates(ctx context.Context, query *dto.ListPushTemplatesQuery) (listing.Page[*domain.PushTemplate], error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return listing.Page[*domain.PushTemplate]{}, err
	}

	q := listing.Query{Search: query.Search, Page: query.Page, Limit: query.Limit}
	return listing.Apply(templates, q,
		func(t *domain.PushTemplate, term string) bool {
			return listing.ContainsFold(term, t.Key, t.Title, t.Body)
		},
		listing.Equals(query.Language, func(t *domain.PushTemplate) string { return t.Language }),
	), nil
}

// GetTemplate retrieves a template by ID
func (s *pushService) GetTemplate(ctx context.Context, id string) (*domain.PushTemplate, error) {
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
func (s *pushService) CreateTemplate(ctx context.Context, req *dto.PushTemplateRequest) (*domain.PushTemplate, error) {
	t, err := pushTemplateFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, err
	}
	return t, nil
}

// UpdateTemplate replaces a template
func (s *pushService) UpdateTemplate(ctx context.Context, id string, req *dto.PushTemplateRequest) (*domain.PushTemplate, error) {
	t, err := pushTemplateFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id

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
	return t, nil
}

// DeleteTemplate removes a template
func (s *pushService) DeleteTemplate(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	return nil
}

// GetSettings returns saved settings or the defaults
func (s *pushService) GetSettings(ctx context.Context) (*domain.PushSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := domain.DefaultPushSettings()
		return &defaults, nil
	}
	return settings, nil
}

// UpdateSettings applies a partial update on top of the current settings
func (s *pushService) UpdateSettings(ctx context.Context, actor domain.Actor, req *dto.UpdatePushSettingsRequest) (*domain.PushSettings, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if req.DefaultIcon != nil {
		settings.DefaultIcon = *req.DefaultIcon
	}
	if req.DefaultBadge != nil {
		settings.DefaultBadge = *req.DefaultBadge
	}
	if req.TTLSeconds != nil {
		settings.TTLSeconds = *req.TTLSeconds
	}
	if req.Urgency != nil {
		settings.Urgency = *req.Urgency
	}
	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	settings.UpdatedBy = actor.UserID

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "push settings updated",
		zap.String("admin_user_id", actor.UserID),
		zap.Bool("enabled", settings.Enabled),
	)
	return settings, nil
}

// SendTest renders a template and publishes it as a test push job
func (s *pushService) SendTest(ctx context.Context, actor domain.Actor, req *dto.TestPushRequest) (*dto.TestPushResponse, error) {
	var resp *dto.TestPushResponse
	err := telemetry.Trace(ctx, "push.send_test", func(ctx context.Context) (err error) {
		resp, err = s.sendTest(ctx, actor, req)
		return err
	}, telemetry.TemplateAttr(req.TemplateKey))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *pushService) sendTest(ctx context.Context, actor domain.Actor, req *dto.TestPushRequest) (*dto.TestPushResponse, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, ErrPushDisabled
	}

	language := s.defaultLanguage
	if req.Language != "" {
		lang, err := translation.NormalizeLanguage(req.Language)
		if err != nil {
			return nil, invalid("Invalid language")
		}
		language = lang
	}

	t, err := s.findTemplate(ctx, req.TemplateKey, language)
	if err != nil {
		return nil, err
	}

	data := req.Data
	if data == nil {
		data = map[string]any{}
	}
	title, err := render.Text(t.Title, data)
	if err != nil {
		return nil, invalid(err.Error())
	}
	body, err := render.Text(t.Body, data)
	if err != nil {
		return nil, invalid(err.Error())
	}

	icon := t.Icon
	if icon == "" {
		icon = settings.DefaultIcon
	}
	userID := req.UserID
	if userID == "" {
		userID = actor.UserID
	}

	job := &notifier.PushJob{
		MessageID:   uuid.New().String(),
		UserID:      userID,
		TemplateKey: t.Key,
		Language:    t.Language,
		Title:       title,
		Body:        body,
		Icon:        icon,
		Badge:       settings.DefaultBadge,
		TTL:         settings.TTLSeconds,
		Urgency:     settings.Urgency,
		Data:        data,
		Test:        true,
		CreatedAt:   time.Now().UTC(),
	}

	pubErr := s.publisher.Publish(ctx, job)
	s.metrics.PushPublished.Inc(ctx, telemetry.TemplateAttr(t.Key), telemetry.OutcomeAttr(pubErr == nil))

	entry := &domain.PushLog{
		UserID:      userID,
		TemplateKey: t.Key,
		Channel:     pushChannel,
		Recipient:   userID,
		Status:      PushStatusTestSent,
		Metadata: map[string]any{
			"message_id": job.MessageID,
			"title":      title,
			"language":   t.Language,
			"sent_by":    actor.UserID,
		},
	}
	if pubErr != nil {
		entry.Status = PushStatusFailed
		entry.Metadata["error"] = pubErr.Error()
	}
	if err := s.repo.CreateLog(context.WithoutCancel(ctx), entry); err != nil {
		logger.WarnCtx(ctx, "failed to record push log", zap.String("message_id", job.MessageID), zap.Error(err))
	}

	if pubErr != nil {
		logger.ErrorCtx(ctx, "failed to publish test push",
			zap.String("template_key", t.Key),
			zap.String("publisher", s.publisher.Name()),
			zap.Error(pubErr),
		)
		return nil, fmt.Errorf("failed to publish push notification: %w", pubErr)
	}

	return &dto.TestPushResponse{
		MessageID: job.MessageID,
		Title:     title,
		Body:      body,
		Icon:      icon,
		Badge:     settings.DefaultBadge,
		Language:  t.Language,
		Data:      data,
	}, nil
}

// ListLogs lists push dispatches
func (s *pushService) ListLogs(ctx context.Context, query *dto.ListPushLogsQuery) ([]*domain.PushLog, int64, error) {
	query.SetDefaults()
	return s.repo.ListLogs(ctx, query.ToFilter())
}

func (s *pushService) findTemplate(ctx context.Context, key, language string) (*domain.PushTemplate, error) {
	t, err := s.repo.FindActiveTemplate(ctx, key, language)
	if err != nil {
		return nil, err
	}
	if t == nil && language != s.defaultLanguage {
		t, err = s.repo.FindActiveTemplate(ctx, key, s.defaultLanguage)
		if err != nil {
			return nil, err
		}
	}
	if t == nil {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func pushTemplateFromRequest(req *dto.PushTemplateRequest) (*domain.PushTemplate, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}
	t := req.ToTemplate()
	lang, err := translation.NormalizeLanguage(t.Language)
	if err != nil {
		return nil, invalid("Invalid language")
	}
	t.Language = lang
	t.Title = strings.TrimSpace(t.Title)
	if _, err := render.Text(t.Title, nil); err != nil {
		return nil, invalid("Title is not a valid template")
	}
	if _, err := render.Text(t.Body, nil); err != nil {
		return nil, invalid("Body is not a valid template")
	}
	return t, nil
}
