package dto

import (
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/pricing"
)

// ListEventsQuery represents query parameters for the event list
type ListEventsQuery struct {
	Page             int    `form:"page" binding:"omitempty,min=1"`
	Limit            int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status           string `form:"status" binding:"omitempty"`
	ModerationStatus string `form:"moderation_status" binding:"omitempty"`
	Search           string `form:"search" binding:"omitempty,max=255"`
	SortBy           string `form:"sort_by" binding:"omitempty,oneof=created_at title"`
}

// SetDefaults sets default values for query parameters
func (q *ListEventsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
}

// Validate checks the status filters
func (q *ListEventsQuery) Validate() (bool, string) {
	if q.Status != "" && !domain.IsValidEventStatus(q.Status) {
		return false, "Invalid status"
	}
	if q.ModerationStatus != "" && !domain.IsValidModerationStatus(q.ModerationStatus) {
		return false, "Invalid moderation status"
	}
	return true, ""
}

// ToFilter converts the query to a repository filter
func (q *ListEventsQuery) ToFilter() domain.EventFilter {
	return domain.EventFilter{
		Status:           q.Status,
		ModerationStatus: q.ModerationStatus,
		Search:           q.Search,
		SortBy:           q.SortBy,
		Page:             q.Page,
		Limit:            q.Limit,
	}
}

// UpdateEventStatusRequest represents a status or moderation change
type UpdateEventStatusRequest struct {
	Status           *string `json:"status"`
	ModerationStatus *string `json:"moderation_status"`
	AdminNotes       *string `json:"admin_notes" binding:"omitempty,max=2000"`
}

// Validate checks that at least one known status is provided
func (r *UpdateEventStatusRequest) Validate() (bool, string) {
	if r.Status == nil && r.ModerationStatus == nil {
		return false, "status or moderation_status is required"
	}
	if r.Status != nil && !domain.IsValidEventStatus(*r.Status) {
		return false, "Invalid status"
	}
	if r.ModerationStatus != nil && !domain.IsValidModerationStatus(*r.ModerationStatus) {
		return false, "Invalid moderation status"
	}
	return true, ""
}

// UpdateEventPricingRequest represents the discount form of an event
type UpdateEventPricingRequest struct {
	OriginalPrice      *float64 `json:"original_price" binding:"required"`
	DiscountedPrice    *float64 `json:"discounted_price"`
	DiscountPercentage *int     `json:"discount_percentage" binding:"omitempty,min=0,max=100"`
}

// PricingQuoteQuery selects a pricing option and quantity to quote
type PricingQuoteQuery struct {
	CategoryID string `form:"category_id"`
	TierID     string `form:"tier_id"`
	Quantity   int    `form:"quantity" binding:"omitempty,min=1,max=100"`
}

// EventDetailResponse is an event with its bookable options and display price
type EventDetailResponse struct {
	Event          *domain.Event    `json:"event"`
	PricingOptions []pricing.Option `json:"pricing_options"`
	PriceSummary   pricing.Summary  `json:"price_summary"`
}

// NewEventDetailResponse builds the detail view of an event
func NewEventDetailResponse(e *domain.Event) *EventDetailResponse {
	in := e.PricingInput()
	return &EventDetailResponse{
		Event:          e,
		PricingOptions: pricing.Options(in),
		PriceSummary:   pricing.Summarize(in),
	}
}
