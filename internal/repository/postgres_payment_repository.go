package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db database.TxBeginner
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db database.TxBeginner) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// rangeClause builds a created_at condition for column, starting at argIndex
func rangeClause(column string, r domain.DateRange, argIndex int) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	if !r.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", column, argIndex))
		args = append(args, r.From)
		argIndex++
	}
	if !r.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", column, argIndex))
		args = append(args, r.To)
	}
	return conditions, args
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// Stats aggregates transactions, refunds and disputes in a range
func (r *PostgresPaymentRepository) Stats(ctx context.Context, dr domain.DateRange) (*domain.PaymentStats, error) {
	stats := &domain.PaymentStats{}

	conditions, args := rangeClause("pt.created_at", dr, 1)
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT
			COUNT(pt.id),
			COALESCE(SUM(CASE WHEN pt.status = 'succeeded' THEN pt.amount ELSE 0 END), 0)::float8,
			COUNT(CASE WHEN pt.status = 'failed' THEN 1 END),
			COUNT(CASE WHEN pt.status = 'succeeded' THEN 1 END),
			COUNT(CASE WHEN pt.status = 'pending' THEN 1 END),
			COALESCE(AVG(CASE WHEN pt.status = 'succeeded' THEN pt.amount END), 0)::float8,
			COUNT(DISTINCT pt.booking_id),
			COUNT(CASE WHEN pt.status = 'requires_action' THEN 1 END)
		FROM payment_transactions pt
		%s
	`, where(conditions)), args...).Scan(
		&stats.TotalTransactions,
		&stats.TotalRevenue,
		&stats.FailedPayments,
		&stats.SuccessfulPayments,
		&stats.PendingPayments,
		&stats.AverageTransactionValue,
		&stats.UniqueBookings,
		&stats.RequiresAction,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	conditions, args = rangeClause("rf.created_at", dr, 1)
	conditions = append(conditions, "rf.status <> 'failed'")
	err = r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(rf.amount), 0)::float8
		FROM refunds rf
		%s
	`, where(conditions)), args...).Scan(&stats.TotalRefunds, &stats.TotalRefunded)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate refunds: %w", err)
	}

	conditions, args = rangeClause("d.created_at", dr, 1)
	err = r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT COUNT(*), COUNT(CASE WHEN d.status = 'needs_response' THEN 1 END)
		FROM payment_disputes d
		%s
	`, where(conditions)), args...).Scan(&stats.TotalDisputes, &stats.PendingDisputes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate disputes: %w", err)
	}

	return stats, nil
}

const paymentColumns = `
	pt.id::text, COALESCE(pt.booking_id::text, ''), COALESCE(pt.stripe_payment_id, ''),
	COALESCE(pt.amount, 0)::float8, COALESCE(pt.currency, 'eur'), pt.status,
	COALESCE(pt.payment_method_type, ''),
	(SELECT COALESCE(SUM(rf.amount), 0)::float8 FROM refunds rf WHERE rf.payment_transaction_id = pt.id AND rf.status <> 'failed'),
	COALESCE(b.booking_reference, ''), COALESCE(b.customer_name, ''), COALESCE(b.customer_email, ''),
	COALESCE(e.id::text, ''), COALESCE(e.title, ''), pt.created_at
`

const paymentJoins = `
	FROM payment_transactions pt
	LEFT JOIN bookings b ON pt.booking_id = b.id
	LEFT JOIN events e ON b.event_id = e.id
`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.StripePaymentID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.PaymentMethodType,
		&p.RefundedAmount,
		&p.BookingReference,
		&p.CustomerName,
		&p.CustomerEmail,
		&p.EventID,
		&p.EventTitle,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListTransactions retrieves transactions with pagination and filters
func (r *PostgresPaymentRepository) ListTransactions(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("pt.status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}

	if filter.PaymentMethodType != "" {
		conditions = append(conditions, fmt.Sprintf("pt.payment_method_type = $%d", argIndex))
		args = append(args, filter.PaymentMethodType)
		argIndex++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(pt.stripe_payment_id ILIKE $%d OR b.customer_email ILIKE $%d OR e.title ILIKE $%d OR b.booking_reference ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, likePattern(filter.Search))
		argIndex++
	}

	rangeConds, rangeArgs := rangeClause("pt.created_at", filter.Range, argIndex)
	conditions = append(conditions, rangeConds...)
	args = append(args, rangeArgs...)
	argIndex += len(rangeArgs)

	whereClause := where(conditions)

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", paymentJoins, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY pt.created_at DESC LIMIT $%d OFFSET $%d",
		paymentColumns, paymentJoins, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset(filter.Page, filter.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Revenue groups revenue by day or month over the last days
func (r *PostgresPaymentRepository) Revenue(ctx context.Context, days int, groupBy string) ([]*domain.RevenuePoint, error) {
	format := "YYYY-MM-DD"
	if groupBy == "month" {
		format = "YYYY-MM"
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			TO_CHAR(pt.created_at, $1) AS period,
			COUNT(*),
			COALESCE(SUM(CASE WHEN pt.status = 'succeeded' THEN pt.amount ELSE 0 END), 0)::float8,
			COUNT(CASE WHEN pt.status = 'succeeded' THEN 1 END)
		FROM payment_transactions pt
		WHERE pt.created_at >= NOW() - make_interval(days => $2)
		GROUP BY TO_CHAR(pt.created_at, $1)
		ORDER BY period ASC
	`, format, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer rows.Close()

	points := make([]*domain.RevenuePoint, 0)
	for rows.Next() {
		p := &domain.RevenuePoint{}
		if err := rows.Scan(&p.Period, &p.Transactions, &p.Revenue, &p.SuccessfulTransactions); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetForRefund retrieves a payment by ID or Stripe payment ID with its refunded total
func (r *PostgresPaymentRepository) GetForRefund(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE pt.id::text = $1 OR pt.stripe_payment_id = $1
		ORDER BY pt.created_at DESC
		LIMIT 1
	`, paymentColumns, paymentJoins)

	p, err := scanPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// ReserveRefund locks the payment, re-checks the refundable balance and
// inserts the refund as pending. It returns the balance before this refund.
func (r *PostgresPaymentRepository) ReserveRefund(ctx context.Context, refund *domain.Refund) (float64, error) {
	if refund.ID == "" {
		refund.ID = uuid.New().String()
	}
	refund.Status = domain.RefundStatusPending

	var remaining float64
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		p := &domain.Payment{ID: refund.PaymentTransactionID}
		err := tx.QueryRow(ctx, `
			SELECT COALESCE(amount, 0)::float8, status
			FROM payment_transactions
			WHERE id::text = $1
			FOR UPDATE
		`, refund.PaymentTransactionID).Scan(&p.Amount, &p.Status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrPaymentNotRefundable
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(amount), 0)::float8
			FROM refunds
			WHERE payment_transaction_id::text = $1 AND status <> 'failed'
		`, refund.PaymentTransactionID).Scan(&p.RefundedAmount)
		if err != nil {
			return fmt.Errorf("failed to sum refunds: %w", err)
		}

		if err := p.CheckRefund(refund.Amount); err != nil {
			return err
		}
		remaining = p.Refundable()

		err = tx.QueryRow(ctx, `
			INSERT INTO refunds (id, payment_transaction_id, amount, reason, status, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING created_at
		`,
			refund.ID,
			refund.PaymentTransactionID,
			refund.Amount,
			nullStringOrValue(refund.Reason),
			refund.Status,
			nullStringOrValue(refund.CreatedBy),
		).Scan(&refund.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to reserve refund: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// CompleteRefund stores the provider result, optionally marks the booking refunded, and records the admin action
func (r *PostgresPaymentRepository) CompleteRefund(ctx context.Context, refund *domain.Refund, bookingID string, markBookingRefunded bool, action *domain.AdminAction) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE refunds SET stripe_refund_id = $2, status = $3
			WHERE id::text = $1
		`, refund.ID, refund.StripeRefundID, refund.Status)
		if err != nil {
			return fmt.Errorf("failed to record refund: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("failed to record refund: reservation %s not found", refund.ID)
		}

		if markBookingRefunded && bookingID != "" {
			_, err = tx.Exec(ctx, `
				UPDATE bookings SET booking_status = 'refunded', payment_status = 'refunded', updated_at = NOW()
				WHERE id::text = $1
			`, bookingID)
			if err != nil {
				return fmt.Errorf("failed to mark booking refunded: %w", err)
			}
		}

		return insertAdminAction(ctx, tx, action)
	})
}

// FailRefund releases a reservation the provider refused
func (r *PostgresPaymentRepository) FailRefund(ctx context.Context, refundID string) error {
	_, err := r.db.Exec(ctx, `UPDATE refunds SET status = 'failed' WHERE id::text = $1 AND status = 'pending'`, refundID)
	if err != nil {
		return fmt.Errorf("failed to release refund: %w", err)
	}
	return nil
}

// ListDisputes retrieves disputes with pagination
func (r *PostgresPaymentRepository) ListDisputes(ctx context.Context, status string, page, limit int) ([]*domain.Dispute, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}
	whereClause := where(conditions)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM payment_disputes d "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count disputes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT d.id::text, COALESCE(d.payment_transaction_id::text, ''), COALESCE(d.stripe_dispute_id, ''),
		       COALESCE(d.amount, 0)::float8, COALESCE(d.reason, ''), d.status,
		       COALESCE(pt.stripe_payment_id, ''), COALESCE(b.customer_email, ''), COALESCE(e.title, ''),
		       d.created_at
		FROM payment_disputes d
		LEFT JOIN payment_transactions pt ON d.payment_transaction_id = pt.id
		LEFT JOIN bookings b ON pt.booking_id = b.id
		LEFT JOIN events e ON b.event_id = e.id
		%s
		ORDER BY d.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset(page, limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list disputes: %w", err)
	}
	defer rows.Close()

	disputes := make([]*domain.Dispute, 0)
	for rows.Next() {
		d := &domain.Dispute{}
		err := rows.Scan(
			&d.ID,
			&d.PaymentTransactionID,
			&d.StripeDisputeID,
			&d.Amount,
			&d.Reason,
			&d.Status,
			&d.StripePaymentID,
			&d.CustomerEmail,
			&d.EventTitle,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		disputes = append(disputes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return disputes, total, nil
}
