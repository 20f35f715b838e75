package domain

import "time"

// Booking represents a customer booking
type Booking struct {
	ID               string     `json:"id"`
	BookingReference string     `json:"booking_reference"`
	EventID          string     `json:"event_id"`
	EventTitle       string     `json:"event_title"`
	EventDate        *time.Time `json:"event_date,omitempty"`
	VenueName        string     `json:"venue_name,omitempty"`
	UserID           string     `json:"user_id,omitempty"`
	UserEmail        string     `json:"user_email,omitempty"`
	CustomerName     string     `json:"customer_name"`
	CustomerEmail    string     `json:"customer_email"`
	Quantity         int        `json:"quantity"`
	TotalPrice       float64    `json:"total_price"`
	BookingStatus    string     `json:"booking_status"`
	PaymentStatus    string     `json:"payment_status"`
	TicketCount      int64      `json:"ticket_count"`
	BookingDate      time.Time  `json:"booking_date"`
}

// Booking status constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusRefunded  = "refunded"
)

// IsValidBookingStatus reports whether s is a known booking status
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRefunded:
		return true
	}
	return false
}

// BookingFilter holds list filters for bookings
type BookingFilter struct {
	Status string
	Search string
	SortBy string
	Page   int
	Limit  int
}
