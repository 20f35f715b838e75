package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresPushRepository implements PushRepository using PostgreSQL
type PostgresPushRepository struct {
	db database.DBTX
}

// NewPostgresPushRepository creates a new PostgresPushRepository
func NewPostgresPushRepository(db database.DBTX) *PostgresPushRepository {
	return &PostgresPushRepository{db: db}
}

const pushTemplateColumns = `
	id::text, key, language, title, body, COALESCE(icon, ''), COALESCE(is_active, true), created_at, updated_at
`

func scanPushTemplate(row pgx.Row) (*domain.PushTemplate, error) {
	t := &domain.PushTemplate{}
	err := row.Scan(&t.ID, &t.Key, &t.Language, &t.Title, &t.Body, &t.Icon, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTemplates retrieves all push templates
func (r *PostgresPushRepository) ListTemplates(ctx context.Context) ([]*domain.PushTemplate, error) {
	rows, err := r.db.Query(ctx, "SELECT "+pushTemplateColumns+" FROM push_templates ORDER BY key, language")
	if err != nil {
		return nil, fmt.Errorf("failed to list push templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*domain.PushTemplate, 0)
	for rows.Next() {
		t, err := scanPushTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PostgresPushRepository) getTemplate(ctx context.Context, query string, args ...interface{}) (*domain.PushTemplate, error) {
	t, err := scanPushTemplate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// GetTemplate retrieves a template by ID
func (r *PostgresPushRepository) GetTemplate(ctx context.Context, id string) (*domain.PushTemplate, error) {
	return r.getTemplate(ctx, "SELECT "+pushTemplateColumns+" FROM push_templates WHERE id::text = $1", id)
}

// FindActiveTemplate retrieves an active template by key and language
func (r *PostgresPushRepository) FindActiveTemplate(ctx context.Context, key, language string) (*domain.PushTemplate, error) {
	return r.getTemplate(ctx,
		"SELECT "+pushTemplateColumns+" FROM push_templates WHERE key = $1 AND language = $2 AND is_active = true",
		key, language)
}

// CreateTemplate creates a template
func (r *PostgresPushRepository) CreateTemplate(ctx context.Context, t *domain.PushTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	query := `
		INSERT INTO push_templates (id, key, language, title, body, icon, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.ID, t.Key, t.Language, t.Title, t.Body, nullStringOrValue(t.Icon), t.IsActive,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create push template: %w", err)
	}
	return nil
}

// UpdateTemplate updates a template
func (r *PostgresPushRepository) UpdateTemplate(ctx context.Context, t *domain.PushTemplate) (bool, error) {
	query := `
		UPDATE push_templates
		SET key = $2, language = $3, title = $4, body = $5, icon = $6, is_active = $7, updated_at = NOW()
		WHERE id::text = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.ID, t.Key, t.Language, t.Title, t.Body, nullStringOrValue(t.Icon), t.IsActive,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if database.IsUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("failed to update push template: %w", err)
	}
	return true, nil
}

// DeleteTemplate removes a template
func (r *PostgresPushRepository) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM push_templates WHERE id::text = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete push template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetSettings retrieves saved settings, nil when none were saved
func (r *PostgresPushRepository) GetSettings(ctx context.Context) (*domain.PushSettings, error) {
	var s domain.PushSettings
	var updatedBy string
	err := r.db.QueryRow(ctx,
		"SELECT settings, COALESCE(updated_by::text, ''), updated_at FROM push_settings WHERE id = 1",
	).Scan(&s, &updatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load push settings: %w", err)
	}
	s.UpdatedBy = updatedBy
	return &s, nil
}

// SaveSettings stores settings
func (r *PostgresPushRepository) SaveSettings(ctx context.Context, s *domain.PushSettings) error {
	query := `
		INSERT INTO push_settings (id, settings, updated_by, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			settings = EXCLUDED.settings,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING updated_at
	`
	if err := r.db.QueryRow(ctx, query, s, nullStringOrValue(s.UpdatedBy)).Scan(&s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save push settings: %w", err)
	}
	return nil
}

// CreateLog records a dispatch
func (r *PostgresPushRepository) CreateLog(ctx context.Context, log *domain.PushLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Metadata == nil {
		log.Metadata = map[string]any{}
	}

	query := `
		INSERT INTO notification_delivery_log (id, user_id, template_key, channel, recipient, status, sent_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
		RETURNING sent_at
	`
	err := r.db.QueryRow(ctx, query,
		log.ID,
		nullStringOrValue(log.UserID),
		log.TemplateKey,
		log.Channel,
		log.Recipient,
		log.Status,
		log.Metadata,
	).Scan(&log.SentAt)
	if err != nil {
		return fmt.Errorf("failed to record push log: %w", err)
	}
	return nil
}

// ListLogs retrieves dispatch logs with pagination and filters
func (r *PostgresPushRepository) ListLogs(ctx context.Context, filter domain.PushLogFilter) ([]*domain.PushLog, int64, error) {
	conditions := []string{"channel = 'push'"}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.TemplateKey != "" {
		conditions = append(conditions, fmt.Sprintf("template_key = $%d", argIndex))
		args = append(args, filter.TemplateKey)
		argIndex++
	}

	whereClause := where(conditions)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM notification_delivery_log "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count push logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id::text, COALESCE(user_id::text, ''), COALESCE(template_key, ''), channel,
		       COALESCE(recipient, ''), status, metadata, sent_at
		FROM notification_delivery_log
		%s
		ORDER BY sent_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list push logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.PushLog, 0)
	for rows.Next() {
		l := &domain.PushLog{}
		err := rows.Scan(&l.ID, &l.UserID, &l.TemplateKey, &l.Channel, &l.Recipient, &l.Status, &l.Metadata, &l.SentAt)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
