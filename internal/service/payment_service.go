package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/gateway"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"go.uber.org/zap"
)

// paymentService implements PaymentService
type paymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     gateway.RefundGateway
	metrics     *telemetry.AdminMetrics
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo repository.PaymentRepository, gw gateway.RefundGateway, metrics *telemetry.AdminMetrics) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		gateway:     gw,
		metrics:     metricsOrNop(metrics),
		now:         time.Now,
	}
}

// Stats aggregates payment activity for the requested window
func (s *paymentService) Stats(ctx context.Context, query *dto.PaymentStatsQuery) (*domain.PaymentStats, error) {
	query.SetDefaults()
	r, ok, msg := query.Range(s.now())
	if !ok {
		return nil, invalid(msg)
	}

	stats, err := s.paymentRepo.Stats(ctx, r)
	if err != nil {
		return nil, err
	}
	if stats.TotalTransactions > 0 {
		rate := float64(stats.SuccessfulPayments) / float64(stats.TotalTransactions) * 100
		stats.SuccessRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// Transactions lists payment transactions
func (s *paymentService) Transactions(ctx context.Context, query *dto.ListTransactionsQuery) ([]*domain.Payment, int64, error) {
	query.SetDefaults()
	filter, ok, msg := query.ToFilter()
	if !ok {
		return nil, 0, invalid(msg)
	}
	return s.paymentRepo.ListTransactions(ctx, filter)
}

// Revenue returns the revenue series grouped by day or month
func (s *paymentService) Revenue(ctx context.Context, query *dto.RevenueQuery) (*dto.RevenueResponse, error) {
	query.SetDefaults()
	points, err := s.paymentRepo.Revenue(ctx, domain.PeriodDays(query.Period), query.GroupBy)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []*domain.RevenuePoint{}
	}
	return &dto.RevenueResponse{
		Analytics: points,
		Period:    query.Period,
		GroupBy:   query.GroupBy,
	}, nil
}

// Refund refunds part or all of a succeeded payment at the provider and
// records it locally. The amount is reserved under a row lock before the
// provider is called, so concurrent refunds cannot exceed the payment. A
// refund covering the remaining balance marks the booking refunded.
func (s *paymentService) Refund(ctx context.Context, actor domain.Actor, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	var resp *dto.RefundResponse
	err := telemetry.Trace(ctx, "payment.refund", func(ctx context.Context) (err error) {
		resp, err = s.refund(ctx, actor, req)
		return err
	}, telemetry.PaymentAttr(req.PaymentID))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *paymentService) refund(ctx context.Context, actor domain.Actor, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	payment, err := s.paymentRepo.GetForRefund(ctx, strings.TrimSpace(req.PaymentID))
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if err := payment.CheckRefund(req.Amount); err != nil {
		return nil, err
	}

	refund := &domain.Refund{
		PaymentTransactionID: payment.ID,
		Amount:               req.Amount,
		Reason:               req.Reason,
		CreatedBy:            actor.UserID,
	}
	remaining, err := s.paymentRepo.ReserveRefund(ctx, refund)
	if err != nil {
		return nil, err
	}
	fully := math.Round(req.Amount*100) >= math.Round(remaining*100)

	result, err := s.gateway.Refund(ctx, &gateway.RefundRequest{
		PaymentID: payment.StripePaymentID,
		Amount:    req.Amount,
		Currency:  payment.Currency,
		Reason:    req.Reason,
		Metadata: map[string]string{
			"payment_transaction_id": payment.ID,
			"booking_id":             payment.BookingID,
			"admin_user_id":          actor.UserID,
			"refund_id":              refund.ID,
		},
	})
	if err != nil {
		s.metrics.Refunds.Inc(ctx, telemetry.OutcomeAttr(false))
		logger.ErrorCtx(ctx, "refund rejected by provider",
			zap.String("payment_id", payment.ID),
			zap.String("gateway", s.gateway.Name()),
			zap.Error(err),
		)
		if relErr := s.paymentRepo.FailRefund(ctx, refund.ID); relErr != nil {
			logger.ErrorCtx(ctx, "failed to release refund reservation",
				zap.String("refund_id", refund.ID),
				zap.Error(relErr),
			)
		}
		if errors.Is(err, gateway.ErrRefundDeclined) {
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRefundFailed, s.gateway.Name(), err)
	}

	refund.StripeRefundID = result.RefundID
	refund.Status = result.Status

	action := actor.NewAction(domain.ActionRefundPayment, "payment", payment.ID,
		fmt.Sprintf("Refunded %.2f %s on payment %s", req.Amount, strings.ToUpper(payment.Currency), payment.StripePaymentID),
		map[string]any{
			"amount":           req.Amount,
			"reason":           req.Reason,
			"stripe_refund_id": result.RefundID,
			"booking_id":       payment.BookingID,
			"fully_refunded":   fully,
		})

	if err := s.paymentRepo.CompleteRefund(ctx, refund, payment.BookingID, fully, action); err != nil {
		// the provider already moved the money; the pending row keeps the balance held
		logger.ErrorCtx(ctx, "refund issued but not recorded",
			zap.String("payment_id", payment.ID),
			zap.String("refund_id", refund.ID),
			zap.String("stripe_refund_id", result.RefundID),
			zap.Float64("amount", req.Amount),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.Refunds.Inc(ctx, telemetry.OutcomeAttr(true))
	s.metrics.RefundedAmount.Record(ctx, req.Amount)
	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionRefundPayment))

	logger.InfoCtx(ctx, "refund issued",
		zap.String("payment_id", payment.ID),
		zap.String("stripe_refund_id", result.RefundID),
		zap.Float64("amount", req.Amount),
		zap.Bool("fully_refunded", fully),
	)

	return &dto.RefundResponse{
		Refund:         refund,
		StripeRefundID: result.RefundID,
		StripeStatus:   result.Status,
		FullyRefunded:  fully,
	}, nil
}

// Disputes lists chargebacks
func (s *paymentService) Disputes(ctx context.Context, query *dto.ListDisputesQuery) ([]*domain.Dispute, int64, error) {
	query.SetDefaults()
	return s.paymentRepo.ListDisputes(ctx, query.Status, query.Page, query.Limit)
}
