package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/jackc/pgx/v5"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db database.TxBeginner
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(db database.TxBeginner) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventSelect = `
	SELECT e.id::text, e.title, COALESCE(e.description, ''), e.event_date,
	       COALESCE(e.venue_id::text, ''), COALESCE(v.name, ''), COALESCE(v.city, ''),
	       COALESCE(e.organizer_id::text, ''), COALESCE(uc.email, ''),
	       COALESCE(e.approved_by::text, ''), COALESCE(ua.email, ''),
	       e.status, COALESCE(e.moderation_status, 'under_review'), COALESCE(e.admin_notes, ''),
	       COALESCE(e.original_price, 0)::float8, COALESCE(e.discounted_price, e.original_price, 0)::float8,
	       COALESCE(e.discount_percentage, 0)::int, e.pricing,
	       COALESCE(e.total_tickets, 0)::int, COALESCE(e.available_tickets, 0)::int,
	       (SELECT COUNT(*) FROM bookings b WHERE b.event_id = e.id),
	       (SELECT COALESCE(SUM(b.quantity), 0)::bigint FROM bookings b WHERE b.event_id = e.id AND b.booking_status = 'confirmed'),
	       (SELECT COUNT(*) FROM reviews r WHERE r.event_id = e.id),
	       (SELECT AVG(r.rating)::float8 FROM reviews r WHERE r.event_id = e.id),
	       e.created_at, e.updated_at
	FROM events e
	LEFT JOIN venues v ON e.venue_id = v.id
	LEFT JOIN users uc ON e.organizer_id = uc.id
	LEFT JOIN users ua ON e.approved_by = ua.id
`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	ev := &domain.Event{}
	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.EventDate,
		&ev.VenueID,
		&ev.VenueName,
		&ev.VenueCity,
		&ev.OrganizerID,
		&ev.CreatorEmail,
		&ev.ApprovedBy,
		&ev.ApprovedByEmail,
		&ev.Status,
		&ev.ModerationStatus,
		&ev.AdminNotes,
		&ev.OriginalPrice,
		&ev.DiscountedPrice,
		&ev.DiscountPercentage,
		&ev.Pricing,
		&ev.TotalTickets,
		&ev.AvailableTickets,
		&ev.TotalBookings,
		&ev.ConfirmedTickets,
		&ev.ReviewCount,
		&ev.AverageRating,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// List retrieves events with pagination and filters
func (r *PostgresEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.ModerationStatus != "" {
		conditions = append(conditions, fmt.Sprintf("e.moderation_status = $%d", argIndex))
		args = append(args, filter.ModerationStatus)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.title ILIKE $%d OR e.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events e %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	orderBy := "e.created_at DESC"
	if filter.SortBy == "title" {
		orderBy = "e.title ASC"
	}

	query := fmt.Sprintf("%s %s ORDER BY %s LIMIT $%d OFFSET $%d",
		eventSelect, whereClause, orderBy, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return getEvent(ctx, r.db, id)
}

func getEvent(ctx context.Context, q database.DBTX, id string) (*domain.Event, error) {
	ev, err := scanEvent(q.QueryRow(ctx, eventSelect+" WHERE e.id::text = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

// UpdateStatus changes status fields and records the admin action in the same transaction
func (r *PostgresEventRepository) UpdateStatus(ctx context.Context, id string, update EventStatusUpdate, audit func(*domain.EventStatusChange) *domain.AdminAction) (*domain.EventStatusChange, error) {
	var change *domain.EventStatusChange

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var oldStatus, oldModeration string
		err := tx.QueryRow(ctx,
			"SELECT status, COALESCE(moderation_status, 'under_review') FROM events WHERE id::text = $1 FOR UPDATE",
			id,
		).Scan(&oldStatus, &oldModeration)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		var approvedBy interface{}
		if update.ModerationStatus != nil && *update.ModerationStatus == domain.ModerationApproved {
			approvedBy = nullStringOrValue(update.ApprovedBy)
		}

		_, err = tx.Exec(ctx, `
			UPDATE events
			SET status = COALESCE($2::text, status),
			    moderation_status = COALESCE($3::text, moderation_status),
			    admin_notes = COALESCE($4::text, admin_notes),
			    approved_by = COALESCE($5::uuid, approved_by),
			    updated_at = NOW()
			WHERE id::text = $1
		`, id, update.Status, update.ModerationStatus, update.AdminNotes, approvedBy)
		if err != nil {
			return fmt.Errorf("failed to update event status: %w", err)
		}

		ev, err := getEvent(ctx, tx, id)
		if err != nil {
			return err
		}
		change = &domain.EventStatusChange{
			Event:               ev,
			OldStatus:           oldStatus,
			OldModerationStatus: oldModeration,
		}

		if audit != nil {
			return insertAdminAction(ctx, tx, audit(change))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

// UpdatePricing stores reconciled prices and records the admin action
func (r *PostgresEventRepository) UpdatePricing(ctx context.Context, id string, p pricing.Pricing, action *domain.AdminAction) (*domain.Event, error) {
	var ev *domain.Event

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE events
			SET original_price = $2, discounted_price = $3, discount_percentage = $4, updated_at = NOW()
			WHERE id::text = $1
		`, id, p.OriginalPrice, p.DiscountedPrice, p.DiscountPercentage)
		if err != nil {
			return fmt.Errorf("failed to update event pricing: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		if ev, err = getEvent(ctx, tx, id); err != nil {
			return err
		}
		return insertAdminAction(ctx, tx, action)
	})
	if err != nil {
		return nil, err
	}

	return ev, nil
}

// CountConfirmedBookings counts confirmed bookings of an event
func (r *PostgresEventRepository) CountConfirmedBookings(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM bookings WHERE event_id::text = $1 AND booking_status = 'confirmed'",
		id,
	).Scan(&count)
	return count, err
}

// Delete removes an event and records the admin action
func (r *PostgresEventRepository) Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error) {
	deleted := false

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM event_categories WHERE event_id::text = $1", id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, "DELETE FROM events WHERE id::text = $1", id)
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
