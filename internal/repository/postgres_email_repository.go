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

// PostgresEmailRepository implements EmailRepository using PostgreSQL
type PostgresEmailRepository struct {
	db database.DBTX
}

// NewPostgresEmailRepository creates a new PostgresEmailRepository
func NewPostgresEmailRepository(db database.DBTX) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

const emailTemplateColumns = `
	id::text, name, language, subject, body, COALESCE(description, ''), variables,
	COALESCE(is_active, true), COALESCE(created_by::text, ''), COALESCE(updated_by::text, ''),
	created_at, updated_at
`

func scanEmailTemplate(row pgx.Row) (*domain.EmailTemplate, error) {
	t := &domain.EmailTemplate{}
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Language,
		&t.Subject,
		&t.Body,
		&t.Description,
		&t.Variables,
		&t.IsActive,
		&t.CreatedBy,
		&t.UpdatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if t.Variables == nil {
		t.Variables = map[string]any{}
	}
	return t, nil
}

func (r *PostgresEmailRepository) queryTemplates(ctx context.Context, query string, args ...interface{}) ([]*domain.EmailTemplate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list email templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*domain.EmailTemplate, 0)
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// ListTemplates retrieves templates, optionally for one language
func (r *PostgresEmailRepository) ListTemplates(ctx context.Context, language string) ([]*domain.EmailTemplate, error) {
	if language != "" {
		return r.queryTemplates(ctx,
			"SELECT "+emailTemplateColumns+" FROM email_templates WHERE language = $1 ORDER BY name, language",
			language)
	}
	return r.queryTemplates(ctx, "SELECT "+emailTemplateColumns+" FROM email_templates ORDER BY name, language")
}

func (r *PostgresEmailRepository) getTemplate(ctx context.Context, query string, args ...interface{}) (*domain.EmailTemplate, error) {
	t, err := scanEmailTemplate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// GetTemplate retrieves a template by ID
func (r *PostgresEmailRepository) GetTemplate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	return r.getTemplate(ctx, "SELECT "+emailTemplateColumns+" FROM email_templates WHERE id::text = $1", id)
}

// FindActiveTemplate retrieves an active template by name and language
func (r *PostgresEmailRepository) FindActiveTemplate(ctx context.Context, name, language string) (*domain.EmailTemplate, error) {
	return r.getTemplate(ctx,
		"SELECT "+emailTemplateColumns+" FROM email_templates WHERE name = $1 AND language = $2 AND is_active = true",
		name, language)
}

// CreateTemplate creates a template
func (r *PostgresEmailRepository) CreateTemplate(ctx context.Context, t *domain.EmailTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	query := `
		INSERT INTO email_templates (id, name, language, subject, body, description, variables, is_active, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.Language,
		t.Subject,
		t.Body,
		nullStringOrValue(t.Description),
		t.Variables,
		t.IsActive,
		nullStringOrValue(t.CreatedBy),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create email template: %w", err)
	}
	t.UpdatedBy = t.CreatedBy
	return nil
}

// UpdateTemplate updates a template
func (r *PostgresEmailRepository) UpdateTemplate(ctx context.Context, t *domain.EmailTemplate) (bool, error) {
	query := `
		UPDATE email_templates
		SET name = $2, language = $3, subject = $4, body = $5, description = $6,
		    variables = $7, is_active = $8, updated_by = $9, updated_at = NOW()
		WHERE id::text = $1
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.Language,
		t.Subject,
		t.Body,
		nullStringOrValue(t.Description),
		t.Variables,
		t.IsActive,
		nullStringOrValue(t.UpdatedBy),
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if database.IsUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("failed to update email template: %w", err)
	}
	return true, nil
}

// DeleteTemplate removes a template
func (r *PostgresEmailRepository) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM email_templates WHERE id::text = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete email template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateLog records a delivery attempt
func (r *PostgresEmailRepository) CreateLog(ctx context.Context, log *domain.EmailLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}

	query := `
		INSERT INTO email_logs (id, recipient, template_name, subject, status, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		log.ID,
		log.Recipient,
		log.TemplateName,
		log.Subject,
		log.Status,
		nullStringOrValue(log.ErrorMessage),
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record email log: %w", err)
	}
	return nil
}

// ListLogs retrieves delivery logs with pagination and filters
func (r *PostgresEmailRepository) ListLogs(ctx context.Context, filter domain.EmailLogFilter) ([]*domain.EmailLog, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.TemplateName != "" {
		conditions = append(conditions, fmt.Sprintf("template_name = $%d", argIndex))
		args = append(args, filter.TemplateName)
		argIndex++
	}

	whereClause := where(conditions)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM email_logs "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count email logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id::text, recipient, COALESCE(template_name, ''), COALESCE(subject, ''), status,
		       COALESCE(error_message, ''), created_at
		FROM email_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list email logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.EmailLog, 0)
	for rows.Next() {
		l := &domain.EmailLog{}
		if err := rows.Scan(&l.ID, &l.Recipient, &l.TemplateName, &l.Subject, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

const emailSettingColumns = `
	id::text, setting_key, COALESCE(setting_value, ''), COALESCE(description, ''),
	COALESCE(updated_by::text, ''), updated_at
`

func scanEmailSetting(row pgx.Row) (*domain.EmailSetting, error) {
	s := &domain.EmailSetting{}
	if err := row.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedBy, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// ListSettings retrieves all settings ordered by key
func (r *PostgresEmailRepository) ListSettings(ctx context.Context) ([]*domain.EmailSetting, error) {
	rows, err := r.db.Query(ctx, "SELECT "+emailSettingColumns+" FROM email_settings ORDER BY setting_key")
	if err != nil {
		return nil, fmt.Errorf("failed to list email settings: %w", err)
	}
	defer rows.Close()

	settings := make([]*domain.EmailSetting, 0)
	for rows.Next() {
		s, err := scanEmailSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpdateSetting changes a setting value
func (r *PostgresEmailRepository) UpdateSetting(ctx context.Context, key, value, updatedBy string) (*domain.EmailSetting, error) {
	query := `
		UPDATE email_settings
		SET setting_value = $2, updated_by = $3, updated_at = NOW()
		WHERE setting_key = $1
		RETURNING ` + emailSettingColumns
	s, err := scanEmailSetting(r.db.QueryRow(ctx, query, key, value, nullStringOrValue(updatedBy)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update email setting: %w", err)
	}
	return s, nil
}
