package service

import (
	"context"
	"errors"
	"time"

	"github.com/beout/beout-admin/internal/cache"
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"go.uber.org/zap"
)

// dashboardService implements DashboardService
type dashboardService struct {
	statsRepo  repository.StatsRepository
	actionRepo repository.AdminActionRepository
	cache      cache.Cache
	ttl        time.Duration
	metrics    *telemetry.AdminMetrics
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	statsRepo repository.StatsRepository,
	actionRepo repository.AdminActionRepository,
	c cache.Cache,
	ttl time.Duration,
	metrics *telemetry.AdminMetrics,
) DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &dashboardService{
		statsRepo:  statsRepo,
		actionRepo: actionRepo,
		cache:      c,
		ttl:        ttl,
		metrics:    metricsOrNop(metrics),
	}
}

// Stats returns the dashboard counters and records the view
func (s *dashboardService) Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	err := s.cache.GetJSON(ctx, cache.DashboardStatsKey, stats)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.WarnCtx(ctx, "dashboard cache read failed", zap.Error(err))
		}
		stats, err = s.statsRepo.Dashboard(ctx)
		if err != nil {
			return nil, err
		}
		if s.ttl > 0 {
			if err := s.cache.SetJSON(ctx, cache.DashboardStatsKey, stats, s.ttl); err != nil {
				logger.WarnCtx(ctx, "dashboard cache write failed", zap.Error(err))
			}
		}
	}

	action := actor.NewAction(domain.ActionViewDashboard, "dashboard", "", "Viewed admin dashboard statistics", nil)
	if err := s.actionRepo.Create(ctx, action); err != nil {
		logger.WarnCtx(ctx, "failed to record dashboard view", zap.Error(err))
	} else {
		s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionViewDashboard))
	}

	return stats, nil
}

func metricsOrNop(m *telemetry.AdminMetrics) *telemetry.AdminMetrics {
	if m == nil {
		return &telemetry.AdminMetrics{}
	}
	return m
}
