package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// StripeGateway issues refunds through the Stripe API
type StripeGateway struct {
	client *stripe.Client
	config *GatewayConfig
}

// NewStripeGateway creates a new Stripe refund gateway
func NewStripeGateway(cfg *GatewayConfig) (*StripeGateway, error) {
	if cfg == nil || cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	return &StripeGateway{
		client: stripe.NewClient(cfg.SecretKey),
		config: cfg,
	}, nil
}

// Name returns the gateway name
func (g *StripeGateway) Name() string {
	return "stripe"
}

// Refund refunds part or all of a captured payment
func (g *StripeGateway) Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	cents, err := toMinorUnits(req.Amount)
	if err != nil {
		return nil, err
	}
	params := &stripe.RefundCreateParams{
		Amount:   stripe.Int64(cents),
		Reason:   stripe.String(stripeReason(req.Reason)),
		Metadata: req.Metadata,
	}
	if strings.HasPrefix(req.PaymentID, "ch_") {
		params.Charge = stripe.String(req.PaymentID)
	} else {
		params.PaymentIntent = stripe.String(req.PaymentID)
	}

	refund, err := g.client.V1Refunds.Create(ctx, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			logger.WarnCtx(ctx, "stripe refund rejected",
				zap.String("payment_id", req.PaymentID),
				zap.String("code", string(stripeErr.Code)),
				zap.String("message", stripeErr.Msg),
			)
			return nil, fmt.Errorf("%w: %s", ErrRefundDeclined, stripeErr.Msg)
		}
		return nil, fmt.Errorf("stripe refund failed: %w", err)
	}

	if refund.Status == stripe.RefundStatusFailed || refund.Status == stripe.RefundStatusCanceled {
		return nil, fmt.Errorf("%w: status %s", ErrRefundDeclined, refund.Status)
	}

	return &RefundResponse{
		RefundID: refund.ID,
		Status:   string(refund.Status),
		Amount:   fromMinorUnits(refund.Amount),
		Currency: string(refund.Currency),
	}, nil
}

// stripeReason maps a free-text reason onto Stripe's refund reasons
func stripeReason(reason string) string {
	switch strings.ToLower(strings.TrimSpace(reason)) {
	case string(stripe.RefundReasonDuplicate):
		return string(stripe.RefundReasonDuplicate)
	case string(stripe.RefundReasonFraudulent):
		return string(stripe.RefundReasonFraudulent)
	default:
		return string(stripe.RefundReasonRequestedByCustomer)
	}
}
