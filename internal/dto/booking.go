package dto

import "github.com/beout/beout-admin/internal/domain"

// ListBookingsQuery represents query parameters for the booking list
type ListBookingsQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty"`
	Search string `form:"search" binding:"omitempty,max=255"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=booking_date total_price"`
}

// SetDefaults sets default values for query parameters
func (q *ListBookingsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	if q.SortBy == "" {
		q.SortBy = "booking_date"
	}
}

// Validate checks the status filter
func (q *ListBookingsQuery) Validate() (bool, string) {
	if q.Status != "" && !domain.IsValidBookingStatus(q.Status) {
		return false, "Invalid booking status"
	}
	return true, ""
}

// ToFilter converts the query to a repository filter
func (q *ListBookingsQuery) ToFilter() domain.BookingFilter {
	return domain.BookingFilter{
		Status: q.Status,
		Search: q.Search,
		SortBy: q.SortBy,
		Page:   q.Page,
		Limit:  q.Limit,
	}
}

// ListAdminLogsQuery represents query parameters for the admin action log
type ListAdminLogsQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=200"`
	ActionType  string `form:"action_type" binding:"omitempty,max=100"`
	AdminUserID string `form:"admin_user_id" binding:"omitempty"`
}

// SetDefaults sets default values for query parameters
func (q *ListAdminLogsQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// ToFilter converts the query to a repository filter
func (q *ListAdminLogsQuery) ToFilter() domain.AdminActionFilter {
	return domain.AdminActionFilter{
		ActionType:  q.ActionType,
		AdminUserID: q.AdminUserID,
		Page:        q.Page,
		Limit:       q.Limit,
	}
}
