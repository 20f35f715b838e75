package repository

import (
	"context"
	"fmt"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/database"
)

// PostgresStatsRepository implements StatsRepository using PostgreSQL
type PostgresStatsRepository struct {
	db database.DBTX
}

// NewPostgresStatsRepository creates a new PostgresStatsRepository
func NewPostgresStatsRepository(db database.DBTX) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

const dashboardQuery = `
	SELECT
		(SELECT COUNT(*) FROM events),
		(SELECT COUNT(*) FROM events WHERE status = 'active'),
		(SELECT COUNT(*) FROM events WHERE created_at >= CURRENT_DATE - INTERVAL '30 days'),
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM users WHERE created_at >= CURRENT_DATE - INTERVAL '30 days'),
		(SELECT COUNT(*) FROM users WHERE role = 'admin'),
		(SELECT COUNT(*) FROM bookings),
		(SELECT COUNT(*) FROM bookings WHERE booking_status = 'confirmed'),
		(SELECT COALESCE(SUM(total_price), 0)::float8 FROM bookings WHERE booking_status = 'confirmed'),
		(SELECT COUNT(*) FROM bookings WHERE booking_date >= CURRENT_DATE - INTERVAL '30 days'),
		(SELECT COUNT(*) FROM reviews),
		(SELECT AVG(rating)::float8 FROM reviews)
`

// Dashboard computes the dashboard counters
func (r *PostgresStatsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	s := &domain.DashboardStats{}
	err := r.db.QueryRow(ctx, dashboardQuery).Scan(
		&s.TotalEvents,
		&s.ActiveEvents,
		&s.NewEventsMonth,
		&s.TotalUsers,
		&s.NewUsersMonth,
		&s.AdminUsers,
		&s.TotalBookings,
		&s.ConfirmedBookings,
		&s.TotalRevenue,
		&s.NewBookingsMonth,
		&s.TotalReviews,
		&s.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return s, nil
}
