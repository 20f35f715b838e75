package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway simulates refunds without calling a provider.
// It is used when no Stripe key is configured.
type MockGateway struct {
	mu       sync.Mutex
	refunds  map[string]*RefundResponse
	FailWith error
}

// NewMockGateway creates a new mock refund gateway
func NewMockGateway() *MockGateway {
	return &MockGateway{refunds: make(map[string]*RefundResponse)}
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}

// Refund records a successful refund unless FailWith is set
func (g *MockGateway) Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.FailWith != nil {
		return nil, g.FailWith
	}
	cents, err := toMinorUnits(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefundDeclined, err)
	}

	resp := &RefundResponse{
		RefundID: "re_mock_" + uuid.New().String()[:8],
		Status:   "succeeded",
		Amount:   fromMinorUnits(cents),
		Currency: req.Currency,
	}

	g.mu.Lock()
	g.refunds[resp.RefundID] = resp
	g.mu.Unlock()

	return resp, nil
}

// Refunds returns how many refunds were issued
func (g *MockGateway) Refunds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.refunds)
}
