package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresAdminActionRepository implements AdminActionRepository using PostgreSQL.
// It also persists batches from the audit middleware.
type PostgresAdminActionRepository struct {
	db database.TxBeginner
}

// NewPostgresAdminActionRepository creates a new PostgresAdminActionRepository
func NewPostgresAdminActionRepository(db database.TxBeginner) *PostgresAdminActionRepository {
	return &PostgresAdminActionRepository{db: db}
}

const insertAdminActionQuery = `
	INSERT INTO admin_actions (id, admin_user_id, action_type, target_type, target_id, description, metadata, ip_address, user_agent, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// insertAdminAction writes an action through q, which may be a pool or a transaction
func insertAdminAction(ctx context.Context, q database.DBTX, a *domain.AdminAction) error {
	if a == nil {
		return nil
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	_, err := q.Exec(ctx, insertAdminActionQuery,
		a.ID,
		a.AdminUserID,
		a.ActionType,
		a.TargetType,
		nullStringOrValue(a.TargetID),
		a.Description,
		a.Metadata,
		nullStringOrValue(a.IPAddress),
		nullStringOrValue(a.UserAgent),
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record admin action: %w", err)
	}
	return nil
}

// Create records an admin action
func (r *PostgresAdminActionRepository) Create(ctx context.Context, action *domain.AdminAction) error {
	return insertAdminAction(ctx, r.db, action)
}

// WriteAuditEntries stores a batch captured by the audit middleware in one transaction
func (r *PostgresAdminActionRepository) WriteAuditEntries(ctx context.Context, entries []*middleware.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, e := range entries {
			metadata := e.Metadata
			if metadata == nil {
				metadata = map[string]any{}
			}
			if e.RequestID != "" {
				metadata["request_id"] = e.RequestID
			}
			metadata["source"] = "http"
			action := &domain.AdminAction{
				ID:          e.ID,
				AdminUserID: e.AdminUserID,
				ActionType:  e.ActionType,
				TargetType:  e.TargetType,
				TargetID:    e.TargetID,
				Description: e.Description,
				Metadata:    metadata,
				IPAddress:   e.IPAddress,
				UserAgent:   e.UserAgent,
				CreatedAt:   e.CreatedAt,
			}
			if err := insertAdminAction(ctx, tx, action); err != nil {
				return err
			}
		}
		return nil
	})
}

// List retrieves actions with pagination and filters
func (r *PostgresAdminActionRepository) List(ctx context.Context, filter domain.AdminActionFilter) ([]*domain.AdminAction, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.ActionType != "" {
		conditions = append(conditions, fmt.Sprintf("aa.action_type = $%d", argIndex))
		args = append(args, filter.ActionType)
		argIndex++
	}

	if filter.AdminUserID != "" {
		conditions = append(conditions, fmt.Sprintf("aa.admin_user_id::text = $%d", argIndex))
		args = append(args, filter.AdminUserID)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM admin_actions aa %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count admin actions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT aa.id::text, aa.admin_user_id::text, aa.action_type, aa.target_type,
		       COALESCE(aa.target_id, ''), COALESCE(aa.description, ''), COALESCE(aa.metadata, '{}'::jsonb),
		       COALESCE(aa.ip_address, ''), COALESCE(aa.user_agent, ''), aa.created_at,
		       COALESCE(u.email, ''), COALESCE(up.first_name, ''), COALESCE(up.last_name, '')
		FROM admin_actions aa
		LEFT JOIN users u ON aa.admin_user_id = u.id
		LEFT JOIN user_profiles up ON u.id = up.user_id
		%s
		ORDER BY aa.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list admin actions: %w", err)
	}
	defer rows.Close()

	actions := make([]*domain.AdminAction, 0)
	for rows.Next() {
		a := &domain.AdminAction{}
		if err := rows.Scan(
			&a.ID,
			&a.AdminUserID,
			&a.ActionType,
			&a.TargetType,
			&a.TargetID,
			&a.Description,
			&a.Metadata,
			&a.IPAddress,
			&a.UserAgent,
			&a.CreatedAt,
			&a.AdminEmail,
			&a.AdminFirstName,
			&a.AdminLastName,
		); err != nil {
			return nil, 0, err
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return actions, total, nil
}
