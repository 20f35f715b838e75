package domain

import "time"

// User represents a platform account
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone,omitempty"`
	IsActive       bool      `json:"is_active"`
	Provider       string    `json:"provider,omitempty"`
	TotalBookings  int64     `json:"total_bookings"`
	TotalSpent     float64   `json:"total_spent"`
	EventsCreated  int64     `json:"events_created"`
	ReviewsWritten int64     `json:"reviews_written"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Role constants
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleOrganizer = "organizer"
)

// IsValidRole reports whether r is an assignable role
func IsValidRole(r string) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator, RoleOrganizer:
		return true
	}
	return false
}

// CanUseConsole reports whether the role may sign into the admin console
func CanUseConsole(r string) bool {
	return r == RoleAdmin || r == RoleModerator
}

// UserFilter holds list filters for users
type UserFilter struct {
	Role   string
	Search string
	SortBy string
	Page   int
	Limit  int
}

// UserUpdate holds the editable profile fields; nil means unchanged
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	IsActive  *bool
}
