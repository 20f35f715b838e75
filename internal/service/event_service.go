package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/internal/cache"
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/beout/beout-admin/pkg/telemetry"
	"go.uber.org/zap"
)

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	cache     cache.Cache
	metrics   *telemetry.AdminMetrics
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, c cache.Cache, metrics *telemetry.AdminMetrics) EventService {
	if c == nil {
		c = cache.Noop{}
	}
	return &eventService{
		eventRepo: eventRepo,
		cache:     c,
		metrics:   metricsOrNop(metrics),
	}
}

// List retrieves events with pagination and filters
func (s *eventService) List(ctx context.Context, query *dto.ListEventsQuery) ([]*domain.Event, int64, error) {
	query.SetDefaults()
	if valid, msg := query.Validate(); !valid {
		return nil, 0, invalid(msg)
	}
	return s.eventRepo.List(ctx, query.ToFilter())
}

// Get retrieves an event by ID
func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// UpdateStatus changes the publication or moderation status of an event
func (s *eventService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventStatusRequest) (*domain.Event, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}

	update := repository.EventStatusUpdate{
		Status:           req.Status,
		ModerationStatus: req.ModerationStatus,
		AdminNotes:       req.AdminNotes,
		ApprovedBy:       actor.UserID,
	}

	change, err := s.eventRepo.UpdateStatus(ctx, id, update, func(c *domain.EventStatusChange) *domain.AdminAction {
		metadata := map[string]any{
			"old_status":            c.OldStatus,
			"new_status":            c.Event.Status,
			"old_moderation_status": c.OldModerationStatus,
			"new_moderation_status": c.Event.ModerationStatus,
		}
		if req.AdminNotes != nil {
			metadata["admin_notes"] = *req.AdminNotes
		}
		return actor.NewAction(domain.ActionUpdateEventStatus, "event", id,
			fmt.Sprintf("Updated event %q status to %s (%s)", c.Event.Title, c.Event.Status, c.Event.ModerationStatus),
			metadata)
	})
	if err != nil {
		return nil, err
	}
	if change == nil {
		return nil, ErrEventNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionUpdateEventStatus))
	s.invalidateDashboard(ctx)

	logger.InfoCtx(ctx, "event status updated",
		zap.String("event_id", id),
		zap.String("old_status", change.OldStatus),
		zap.String("new_status", change.Event.Status),
		zap.String("moderation_status", change.Event.ModerationStatus),
	)

	return change.Event, nil
}

// UpdatePricing normalises and stores the discount form of an event
func (s *eventService) UpdatePricing(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventPricingRequest) (*domain.Event, error) {
	p, err := pricing.Reconcile(req.OriginalPrice, req.DiscountedPrice, req.DiscountPercentage)
	if err != nil {
		return nil, err
	}

	action := actor.NewAction(domain.ActionUpdateEventPrice, "event", id,
		fmt.Sprintf("Updated event pricing to %.2f (%d%% off %.2f)", p.DiscountedPrice, p.DiscountPercentage, p.OriginalPrice),
		map[string]any{
			"original_price":      p.OriginalPrice,
			"discounted_price":    p.DiscountedPrice,
			"discount_percentage": p.DiscountPercentage,
		})

	event, err := s.eventRepo.UpdatePricing(ctx, id, p, action)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionUpdateEventPrice))
	return event, nil
}

// Quote prices a quantity of one pricing option as a customer would be charged
func (s *eventService) Quote(ctx context.Context, id string, query *dto.PricingQuoteQuery) (*pricing.Quote, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	quantity := query.Quantity
	if quantity == 0 {
		quantity = 1
	}
	tierID := query.TierID
	if query.CategoryID == "" && tierID == "" {
		tierID = "default"
	}
	opt, err := pricing.Validate(event.PricingInput(), query.CategoryID, tierID, quantity)
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteFor(opt, quantity)
	return &quote, nil
}

// Delete removes an event that has no confirmed bookings
func (s *eventService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}

	confirmed, err := s.eventRepo.CountConfirmedBookings(ctx, id)
	if err != nil {
		return err
	}
	if confirmed > 0 {
		return ErrEventHasBookings
	}

	action := actor.NewAction(domain.ActionDeleteEvent, "event", id,
		fmt.Sprintf("Deleted event %q", event.Title),
		map[string]any{"title": event.Title, "status": event.Status})

	deleted, err := s.eventRepo.Delete(ctx, id, action)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrEventHasBookings
		}
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionDeleteEvent))
	s.invalidateDashboard(ctx)
	return nil
}

func (s *eventService) invalidateDashboard(ctx context.Context) {
	if _, err := s.cache.DeletePattern(ctx, cache.DashboardStatsKey); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate dashboard cache", zap.Error(err))
	}
}
