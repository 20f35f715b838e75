package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrPaymentNotRefundable = errors.New("payment not found or not eligible for refund")
	ErrRefundExceedsAmount  = errors.New("refund amount exceeds refundable balance")
	ErrInvalidRefundAmount  = errors.New("refund amount must be greater than zero")
)

// Payment transaction status constants
const (
	PaymentStatusSucceeded      = "succeeded"
	PaymentStatusFailed         = "failed"
	PaymentStatusPending        = "pending"
	PaymentStatusRequiresAction = "requires_action"
)

// Refund status constants. A pending refund holds its amount until the
// provider answers; failed refunds no longer count against the balance.
const (
	RefundStatusPending = "pending"
	RefundStatusFailed  = "failed"
)

// Dispute status needing an answer from the platform
const DisputeStatusNeedsResponse = "needs_response"

// Payment is a row of payment_transactions enriched with booking data
type Payment struct {
	ID                string    `json:"id"`
	BookingID         string    `json:"booking_id"`
	StripePaymentID   string    `json:"stripe_payment_id"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	PaymentMethodType string    `json:"payment_method_type"`
	RefundedAmount    float64   `json:"refunded_amount"`
	BookingReference  string    `json:"booking_reference,omitempty"`
	CustomerName      string    `json:"customer_name,omitempty"`
	CustomerEmail     string    `json:"customer_email,omitempty"`
	EventID           string    `json:"event_id,omitempty"`
	EventTitle        string    `json:"event_title,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Refundable returns the amount that can still be refunded
func (p *Payment) Refundable() float64 {
	left := p.Amount - p.RefundedAmount
	if left < 0 {
		return 0
	}
	return left
}

// CheckRefund validates a refund request against the payment
func (p *Payment) CheckRefund(amount float64) error {
	if p == nil || p.Status != PaymentStatusSucceeded {
		return ErrPaymentNotRefundable
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidRefundAmount
	}
	// compare whole cents as floats; an int conversion overflows on huge amounts
	if math.Round(amount*100) > math.Round(p.Refundable()*100) {
		return ErrRefundExceedsAmount
	}
	return nil
}

// Refund is a refund issued from the console
type Refund struct {
	ID                   string    `json:"id"`
	PaymentTransactionID string    `json:"payment_transaction_id"`
	StripeRefundID       string    `json:"stripe_refund_id"`
	Amount               float64   `json:"amount"`
	Reason               string    `json:"reason,omitempty"`
	Status               string    `json:"status"`
	CreatedBy            string    `json:"created_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// Dispute is a chargeback raised against a payment
type Dispute struct {
	ID                   string    `json:"id"`
	PaymentTransactionID string    `json:"payment_transaction_id"`
	StripeDisputeID      string    `json:"stripe_dispute_id"`
	Amount               float64   `json:"amount"`
	Reason               string    `json:"reason,omitempty"`
	Status               string    `json:"status"`
	StripePaymentID      string    `json:"stripe_payment_id,omitempty"`
	CustomerEmail        string    `json:"customer_email,omitempty"`
	EventTitle           string    `json:"event_title,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// PaymentStats aggregates payment activity over a window
type PaymentStats struct {
	TotalTransactions       int64   `json:"total_transactions"`
	TotalRevenue            float64 `json:"total_revenue"`
	FailedPayments          int64   `json:"failed_payments"`
	SuccessfulPayments      int64   `json:"successful_payments"`
	PendingPayments         int64   `json:"pending_payments"`
	AverageTransactionValue float64 `json:"average_transaction_value"`
	UniqueBookings          int64   `json:"unique_bookings"`
	RequiresAction          int64   `json:"requires_action"`
	TotalRefunds            int64   `json:"total_refunds"`
	TotalRefunded           float64 `json:"total_refunded"`
	TotalDisputes           int64   `json:"total_disputes"`
	PendingDisputes         int64   `json:"pending_disputes"`
	SuccessRate             float64 `json:"success_rate"`
}

// RevenuePoint is one bucket of the revenue series
type RevenuePoint struct {
	Period                 string  `json:"period"`
	Transactions           int64   `json:"transactions"`
	Revenue                float64 `json:"revenue"`
	SuccessfulTransactions int64   `json:"successful_transactions"`
}

// DateRange bounds a query; zero values mean open-ended
type DateRange struct {
	From time.Time
	To   time.Time
}

// PeriodDays maps a console period (7d, 30d, 90d) to days, defaulting to 30
func PeriodDays(period string) int {
	switch period {
	case "7d":
		return 7
	case "90d":
		return 90
	default:
		return 30
	}
}

// PaymentFilter holds list filters for payment transactions
type PaymentFilter struct {
	Status            string
	PaymentMethodType string
	Search            string
	Range             DateRange
	Page              int
	Limit             int
}
