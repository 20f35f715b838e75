package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrRefundDeclined is returned when the provider refuses a refund
var ErrRefundDeclined = errors.New("refund declined by payment provider")

// RefundGateway defines the interface for issuing refunds at the payment provider
type RefundGateway interface {
	// Refund refunds part or all of a captured payment
	Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error)

	// Name returns the gateway name
	Name() string
}

// RefundRequest represents a refund request
type RefundRequest struct {
	PaymentID string // provider payment reference (pi_... or ch_...)
	Amount    float64
	Currency  string
	Reason    string
	Metadata  map[string]string
}

// RefundResponse represents a refund response
type RefundResponse struct {
	RefundID string
	Status   string
	Amount   float64
	Currency string
}

// GatewayConfig holds common gateway configuration
type GatewayConfig struct {
	SecretKey   string
	Environment string // "test" or "live"
}

// MaxAmount is the largest single charge or refund, in major units
const MaxAmount = 999999.99

// ErrAmountOutOfRange is returned for amounts that cannot be sent to the provider
var ErrAmountOutOfRange = errors.New("amount out of range")

// toMinorUnits converts an amount to cents
func toMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || amount <= 0 || amount > MaxAmount {
		return 0, fmt.Errorf("%w: %v", ErrAmountOutOfRange, amount)
	}
	return int64(math.Round(amount * 100)), nil
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
