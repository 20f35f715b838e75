package domain

import (
	"time"

	"github.com/beout/beout-admin/pkg/pricing"
)

// Event represents an event as seen from the admin console
type Event struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	EventDate          *time.Time         `json:"event_date,omitempty"`
	VenueID            string             `json:"venue_id,omitempty"`
	VenueName          string             `json:"venue_name,omitempty"`
	VenueCity          string             `json:"venue_city,omitempty"`
	OrganizerID        string             `json:"organizer_id,omitempty"`
	CreatorEmail       string             `json:"creator_email,omitempty"`
	ApprovedBy         string             `json:"approved_by,omitempty"`
	ApprovedByEmail    string             `json:"approved_by_email,omitempty"`
	Status             string             `json:"status"`            // active, inactive, cancelled, pending
	ModerationStatus   string             `json:"moderation_status"` // approved, rejected, under_review, suspended
	AdminNotes         string             `json:"admin_notes,omitempty"`
	OriginalPrice      float64            `json:"original_price"`
	DiscountedPrice    float64            `json:"discounted_price"`
	DiscountPercentage int                `json:"discount_percentage"`
	Pricing            *pricing.Structure `json:"pricing,omitempty"`
	TotalTickets       int                `json:"total_tickets"`
	AvailableTickets   int                `json:"available_tickets"`
	TotalBookings      int64              `json:"total_bookings"`
	ConfirmedTickets   int64              `json:"confirmed_tickets"`
	ReviewCount        int64              `json:"review_count"`
	AverageRating      *float64           `json:"average_rating,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Event status constants
const (
	EventStatusActive    = "active"
	EventStatusInactive  = "inactive"
	EventStatusCancelled = "cancelled"
	EventStatusPending   = "pending"
)

// Moderation status constants
const (
	ModerationApproved    = "approved"
	ModerationRejected    = "rejected"
	ModerationUnderReview = "under_review"
	ModerationSuspended   = "suspended"
)

// IsValidEventStatus reports whether s is an allowed event status
func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusActive, EventStatusInactive, EventStatusCancelled, EventStatusPending:
		return true
	}
	return false
}

// IsValidModerationStatus reports whether s is an allowed moderation status
func IsValidModerationStatus(s string) bool {
	switch s {
	case ModerationApproved, ModerationRejected, ModerationUnderReview, ModerationSuspended:
		return true
	}
	return false
}

// PricingInput returns the pricing-relevant view of the event
func (e *Event) PricingInput() pricing.EventPricing {
	return pricing.EventPricing{
		Pricing:            e.Pricing,
		OriginalPrice:      e.OriginalPrice,
		DiscountedPrice:    e.DiscountedPrice,
		DiscountPercentage: e.DiscountPercentage,
		AvailableTickets:   e.AvailableTickets,
	}
}

// EventFilter holds list filters for events
type EventFilter struct {
	Status           string
	ModerationStatus string
	Search           string
	SortBy           string
	Page             int
	Limit            int
}

// EventStatusChange is the outcome of a status update
type EventStatusChange struct {
	Event               *Event
	OldStatus           string
	OldModerationStatus string
}
