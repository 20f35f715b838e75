package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	db database.DBTX
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(db database.DBTX) *PostgresBookingRepository {
	return &PostgresBookingRepository{db: db}
}

// List retrieves bookings with pagination and filters
func (r *PostgresBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.booking_status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(b.booking_reference ILIKE $%d OR b.customer_email ILIKE $%d OR b.customer_name ILIKE $%d OR e.title ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	from := `
		FROM bookings b
		LEFT JOIN events e ON b.event_id = e.id
		LEFT JOIN venues v ON e.venue_id = v.id
		LEFT JOIN users u ON b.user_id = u.id
	`

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", from, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	orderBy := "b.created_at DESC"
	if filter.SortBy == "total_price" {
		orderBy = "b.total_price DESC"
	}

	query := fmt.Sprintf(`
		SELECT b.id::text, COALESCE(b.booking_reference, ''), COALESCE(b.event_id::text, ''),
		       COALESCE(e.title, ''), e.event_date, COALESCE(v.name, ''),
		       COALESCE(b.user_id::text, ''), COALESCE(u.email, ''),
		       COALESCE(b.customer_name, ''), COALESCE(b.customer_email, u.email, ''),
		       COALESCE(b.quantity, 0)::int, COALESCE(b.total_price, 0)::float8,
		       b.booking_status, COALESCE(b.payment_status, 'pending'),
		       (SELECT COUNT(*) FROM tickets t WHERE t.booking_id = b.id),
		       b.created_at
		%s %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, from, whereClause, orderBy, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b := &domain.Booking{}
		err := rows.Scan(
			&b.ID,
			&b.BookingReference,
			&b.EventID,
			&b.EventTitle,
			&b.EventDate,
			&b.VenueName,
			&b.UserID,
			&b.UserEmail,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.Quantity,
			&b.TotalPrice,
			&b.BookingStatus,
			&b.PaymentStatus,
			&b.TicketCount,
			&b.BookingDate,
		)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
