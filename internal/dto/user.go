package dto

import "github.com/beout/beout-admin/internal/domain"

// ListUsersQuery represents query parameters for the user list
type ListUsersQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Role   string `form:"role" binding:"omitempty"`
	Search string `form:"search" binding:"omitempty,max=255"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=created_at email"`
}

// SetDefaults sets default values for query parameters
func (q *ListUsersQuery) SetDefaults() {
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

// ToFilter converts the query to a repository filter
func (q *ListUsersQuery) ToFilter() domain.UserFilter {
	return domain.UserFilter{
		Role:   q.Role,
		Search: q.Search,
		SortBy: q.SortBy,
		Page:   q.Page,
		Limit:  q.Limit,
	}
}

// UpdateUserRoleRequest represents a role change
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Validate checks the requested role
func (r *UpdateUserRoleRequest) Validate() (bool, string) {
	if !domain.IsValidRole(r.Role) {
		return false, "Invalid role"
	}
	return true, ""
}

// UpdateUserRequest represents an edit of a user's profile
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	IsActive  *bool   `json:"is_active"`
}

// Validate validates that at least one field is provided for update
func (r *UpdateUserRequest) Validate() (bool, string) {
	if r.FirstName == nil && r.LastName == nil && r.Phone == nil && r.IsActive == nil {
		return false, "At least one field must be provided for update"
	}
	return true, ""
}

// ToUpdate converts the request to a domain update
func (r *UpdateUserRequest) ToUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		IsActive:  r.IsActive,
	}
}
