package service

import (
	"context"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
)

// bookingService implements BookingService
type bookingService struct {
	bookingRepo repository.BookingRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo}
}

// List retrieves bookings with pagination and filters
func (s *bookingService) List(ctx context.Context, query *dto.ListBookingsQuery) ([]*domain.Booking, int64, error) {
	query.SetDefaults()
	if valid, msg := query.Validate(); !valid {
		return nil, 0, invalid(msg)
	}
	return s.bookingRepo.List(ctx, query.ToFilter())
}

// logService implements LogService
type logService struct {
	actionRepo repository.AdminActionRepository
}

// NewLogService creates a new LogService
func NewLogService(actionRepo repository.AdminActionRepository) LogService {
	return &logService{actionRepo: actionRepo}
}

// List retrieves admin actions, newest first
func (s *logService) List(ctx context.Context, query *dto.ListAdminLogsQuery) ([]*domain.AdminAction, int64, error) {
	query.SetDefaults()
	return s.actionRepo.List(ctx, query.ToFilter())
}
