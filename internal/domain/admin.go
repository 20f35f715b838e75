package domain

import "time"

// Admin action types recorded explicitly by services
const (
	ActionViewDashboard     = "view_dashboard"
	ActionUpdateEventStatus = "update_event_status"
	ActionUpdateEventPrice  = "update_event_pricing"
	ActionDeleteEvent       = "delete_event"
	ActionUpdateUserRole    = "update_user_role"
	ActionUpdateUser        = "update_user"
	ActionDeleteUser        = "delete_user"
	ActionRefundPayment     = "refund_payment"
)

// AdminAction is an entry of the admin action log
type AdminAction struct {
	ID             string         `json:"id"`
	AdminUserID    string         `json:"admin_user_id"`
	ActionType     string         `json:"action"`
	TargetType     string         `json:"target_type"`
	TargetID       string         `json:"target_id,omitempty"`
	Description    string         `json:"details"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	IPAddress      string         `json:"ip_address,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	AdminEmail     string         `json:"admin_email,omitempty"`
	AdminFirstName string         `json:"admin_first_name,omitempty"`
	AdminLastName  string         `json:"admin_last_name,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AdminActionFilter holds list filters for the action log
type AdminActionFilter struct {
	ActionType  string
	AdminUserID string
	Page        int
	Limit       int
}

// Actor identifies the admin performing a request
type Actor struct {
	UserID    string
	Email     string
	Role      string
	IPAddress string
	UserAgent string
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// NewAction starts an admin action attributed to the actor
func (a Actor) NewAction(actionType, targetType, targetID, description string, metadata map[string]any) *AdminAction {
	return &AdminAction{
		AdminUserID: a.UserID,
		ActionType:  actionType,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		Metadata:    metadata,
		IPAddress:   a.IPAddress,
		UserAgent:   a.UserAgent,
		CreatedAt:   time.Now(),
	}
}

// DashboardStats are the headline counters of the admin dashboard
type DashboardStats struct {
	TotalEvents       int64    `json:"total_events"`
	ActiveEvents      int64    `json:"active_events"`
	NewEventsMonth    int64    `json:"new_events_month"`
	TotalUsers        int64    `json:"total_users"`
	NewUsersMonth     int64    `json:"new_users_month"`
	AdminUsers        int64    `json:"admin_users"`
	TotalBookings     int64    `json:"total_bookings"`
	ConfirmedBookings int64    `json:"confirmed_bookings"`
	TotalRevenue      float64  `json:"total_revenue"`
	NewBookingsMonth  int64    `json:"new_bookings_month"`
	TotalReviews      int64    `json:"total_reviews"`
	AverageRating     *float64 `json:"average_rating"`
}
