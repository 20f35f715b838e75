package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/jackc/pgx/v5"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db database.TxBeginner
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db database.TxBeginner) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userSelect = `
	SELECT u.id::text, u.email, COALESCE(u.role, 'user'),
	       COALESCE(p.first_name, ''), COALESCE(p.last_name, ''), COALESCE(p.phone, ''),
	       COALESCE(u.is_active, true), COALESCE(u.provider, 'email'),
	       (SELECT COUNT(*) FROM bookings b WHERE b.user_id = u.id),
	       (SELECT COALESCE(SUM(b.total_price), 0)::float8 FROM bookings b WHERE b.user_id = u.id AND b.booking_status = 'confirmed'),
	       (SELECT COUNT(*) FROM events e WHERE e.organizer_id = u.id),
	       (SELECT COUNT(*) FROM reviews r WHERE r.user_id = u.id),
	       u.created_at, u.updated_at
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
`

func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Role,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.IsActive,
		&u.Provider,
		&u.TotalBookings,
		&u.TotalSpent,
		&u.EventsCreated,
		&u.ReviewsWritten,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func getUser(ctx context.Context, q database.DBTX, id string) (*domain.User, error) {
	u, err := scanUser(q.QueryRow(ctx, userSelect+" WHERE u.id::text = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return getUser(ctx, r.db, id)
}

// GetByEmail retrieves a user with its password hash by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT u.id::text, u.email, COALESCE(u.password, ''), COALESCE(u.role, 'user'),
		       COALESCE(p.first_name, ''), COALESCE(p.last_name, ''),
		       COALESCE(u.is_active, true), COALESCE(u.provider, 'email'), u.created_at, u.updated_at
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE LOWER(u.email) = LOWER($1)
	`
	u := &domain.User{}
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.FirstName,
		&u.LastName,
		&u.IsActive,
		&u.Provider,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// List retrieves users with pagination and filters
func (r *PostgresUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("u.role = $%d", argIndex))
		args = append(args, filter.Role)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(u.email ILIKE $%d OR p.first_name ILIKE $%d OR p.last_name ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users u LEFT JOIN user_profiles p ON p.user_id = u.id %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	orderBy := "u.created_at DESC"
	if filter.SortBy == "email" {
		orderBy = "u.email ASC"
	}

	query := fmt.Sprintf("%s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		userSelect, whereClause, orderBy, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateRole changes a user's role and records the admin action
func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id, role string, audit func(*domain.User) *domain.AdminAction) (*domain.User, error) {
	var user *domain.User

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "UPDATE users SET role = $2, updated_at = NOW() WHERE id::text = $1", id, role)
		if err != nil {
			return fmt.Errorf("failed to update user role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if user, err = getUser(ctx, tx, id); err != nil {
			return err
		}
		if audit != nil {
			return insertAdminAction(ctx, tx, audit(user))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update changes profile fields and records the admin action
func (r *PostgresUserRepository) Update(ctx context.Context, id string, update domain.UserUpdate, action *domain.AdminAction) (*domain.User, error) {
	var user *domain.User

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			"UPDATE users SET is_active = COALESCE($2::boolean, is_active), updated_at = NOW() WHERE id::text = $1",
			id, update.IsActive)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if update.FirstName != nil || update.LastName != nil || update.Phone != nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO user_profiles (user_id, first_name, last_name, phone, updated_at)
				SELECT u.id, $2::text, $3::text, $4::text, NOW() FROM users u WHERE u.id::text = $1
				ON CONFLICT (user_id) DO UPDATE SET
					first_name = COALESCE(EXCLUDED.first_name, user_profiles.first_name),
					last_name = COALESCE(EXCLUDED.last_name, user_profiles.last_name),
					phone = COALESCE(EXCLUDED.phone, user_profiles.phone),
					updated_at = NOW()
			`, id, update.FirstName, update.LastName, update.Phone)
			if err != nil {
				return fmt.Errorf("failed to update user profile: %w", err)
			}
		}

		if user, err = getUser(ctx, tx, id); err != nil {
			return err
		}
		return insertAdminAction(ctx, tx, action)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user and records the admin action
func (r *PostgresUserRepository) Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error) {
	deleted := false

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM user_profiles WHERE user_id::text = $1", id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "DELETE FROM users WHERE id::text = $1", id)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return ErrReferenced
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		deleted = true
		return insertAdminAction(ctx, tx, action)
	})

	return deleted, err
}
