package dto

import (
	"time"

	"github.com/beout/beout-admin/internal/domain"
)

const dateLayout = "2006-01-02"

// PaymentStatsQuery represents query parameters for payment statistics
type PaymentStatsQuery struct {
	Period    string `form:"period" binding:"omitempty,oneof=7d 30d 90d"`
	StartDate string `form:"start_date" binding:"omitempty"`
	EndDate   string `form:"end_date" binding:"omitempty"`
}

// SetDefaults sets default values for query parameters
func (q *PaymentStatsQuery) SetDefaults() {
	if q.Period == "" {
		q.Period = "30d"
	}
}

// Range resolves the query into a date range. An explicit start_date and
// end_date pair wins over the period.
func (q *PaymentStatsQuery) Range(now time.Time) (domain.DateRange, bool, string) {
	if q.StartDate != "" || q.EndDate != "" {
		return explicitRange(q.StartDate, q.EndDate)
	}
	days := domain.PeriodDays(q.Period)
	return domain.DateRange{From: now.AddDate(0, 0, -days)}, true, ""
}

// ListTransactionsQuery represents query parameters for the transaction list
type ListTransactionsQuery struct {
	Page              int    `form:"page" binding:"omitempty,min=1"`
	Limit             int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status            string `form:"status" binding:"omitempty"`
	PaymentMethodType string `form:"payment_method_type" binding:"omitempty,max=50"`
	Search            string `form:"search" binding:"omitempty,max=255"`
	StartDate         string `form:"start_date" binding:"omitempty"`
	EndDate           string `form:"end_date" binding:"omitempty"`
}

// SetDefaults sets default values for query parameters
func (q *ListTransactionsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if q.Status == "all" {
		q.Status = ""
	}
}

// ToFilter converts the query to a repository filter
func (q *ListTransactionsQuery) ToFilter() (domain.PaymentFilter, bool, string) {
	f := domain.PaymentFilter{
		Status:            q.Status,
		PaymentMethodType: q.PaymentMethodType,
		Search:            q.Search,
		Page:              q.Page,
		Limit:             q.Limit,
	}
	if q.StartDate == "" && q.EndDate == "" {
		return f, true, ""
	}
	r, ok, msg := explicitRange(q.StartDate, q.EndDate)
	if !ok {
		return f, false, msg
	}
	f.Range = r
	return f, true, ""
}

// RevenueQuery represents query parameters for revenue analytics
type RevenueQuery struct {
	Period  string `form:"period" binding:"omitempty,oneof=7d 30d 90d"`
	GroupBy string `form:"group_by" binding:"omitempty,oneof=day month"`
}

// SetDefaults sets default values for query parameters
func (q *RevenueQuery) SetDefaults() {
	if q.Period == "" {
		q.Period = "30d"
	}
	if q.GroupBy == "" {
		q.GroupBy = "day"
	}
}

// RevenueResponse represents the revenue series
type RevenueResponse struct {
	Analytics []*domain.RevenuePoint `json:"analytics"`
	Period    string                 `json:"period"`
	GroupBy   string                 `json:"group_by"`
}

// RefundRequest represents an admin refund
type RefundRequest struct {
	PaymentID string  `json:"payment_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0,lte=999999.99"`
	Reason    string  `json:"reason" binding:"omitempty,max=500"`
}

// RefundResponse represents the recorded refund
type RefundResponse struct {
	Refund         *domain.Refund `json:"refund"`
	StripeRefundID string         `json:"stripe_refund_id"`
	StripeStatus   string         `json:"stripe_status"`
	FullyRefunded  bool           `json:"fully_refunded"`
}

// ListDisputesQuery represents query parameters for the dispute list
type ListDisputesQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,max=50"`
}

// SetDefaults sets default values for query parameters
func (q *ListDisputesQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if q.Status == "all" {
		q.Status = ""
	}
}

// explicitRange parses a start/end pair. Both are required; date-only values
// cover the whole end day.
func explicitRange(start, end string) (domain.DateRange, bool, string) {
	if start == "" || end == "" {
		return domain.DateRange{}, false, "start_date and end_date must be provided together"
	}
	from, err := parseDate(start, false)
	if err != nil {
		return domain.DateRange{}, false, "Invalid start_date"
	}
	to, err := parseDate(end, true)
	if err != nil {
		return domain.DateRange{}, false, "Invalid end_date"
	}
	if to.Before(from) {
		return domain.DateRange{}, false, "end_date must not be before start_date"
	}
	return domain.DateRange{From: from, To: to}, true, ""
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
