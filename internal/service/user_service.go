package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"go.uber.org/zap"
)

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
	metrics  *telemetry.AdminMetrics
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, metrics *telemetry.AdminMetrics) UserService {
	return &userService{
		userRepo: userRepo,
		metrics:  metricsOrNop(metrics),
	}
}

// List retrieves users with pagination and filters
func (s *userService) List(ctx context.Context, query *dto.ListUsersQuery) ([]*domain.User, int64, error) {
	query.SetDefaults()
	if query.Role != "" && !domain.IsValidRole(query.Role) {
		return nil, 0, invalid("Invalid role")
	}
	return s.userRepo.List(ctx, query.ToFilter())
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateRole changes a user's role. Only admins may grant or revoke admin,
// and nobody may change their own role.
func (s *userService) UpdateRole(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRoleRequest) (*domain.User, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}
	if id == actor.UserID {
		return nil, ErrSelfRoleChange
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if (req.Role == domain.RoleAdmin || target.Role == domain.RoleAdmin) && !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	oldRole := target.Role
	user, err := s.userRepo.UpdateRole(ctx, id, req.Role, func(u *domain.User) *domain.AdminAction {
		return actor.NewAction(domain.ActionUpdateUserRole, "user", id,
			fmt.Sprintf("Changed role of %s from %s to %s", u.Email, oldRole, req.Role),
			map[string]any{
				"old_role":          oldRole,
				"new_role":          req.Role,
				"target_user_email": u.Email,
			})
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionUpdateUserRole))
	logger.InfoCtx(ctx, "user role updated",
		zap.String("user_id", id),
		zap.String("old_role", oldRole),
		zap.String("new_role", req.Role),
	)

	return user, nil
}

// Update changes a user's profile fields or active flag
func (s *userService) Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRequest) (*domain.User, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, invalid(msg)
	}
	if req.IsActive != nil && !*req.IsActive && id == actor.UserID {
		return nil, invalid("You cannot deactivate your own account")
	}

	metadata := map[string]any{}
	if req.FirstName != nil {
		metadata["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		metadata["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		metadata["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		metadata["is_active"] = *req.IsActive
	}

	action := actor.NewAction(domain.ActionUpdateUser, "user", id, "Updated user profile", metadata)
	user, err := s.userRepo.Update(ctx, id, req.ToUpdate(), action)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionUpdateUser))
	return user, nil
}

// Delete removes a user account. Admins only, never one's own account.
func (s *userService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}
	if id == actor.UserID {
		return ErrSelfDelete
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	action := actor.NewAction(domain.ActionDeleteUser, "user", id,
		fmt.Sprintf("Deleted user %s", target.Email),
		map[string]any{"target_user_email": target.Email, "role": target.Role})

	deleted, err := s.userRepo.Delete(ctx, id, action)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return ErrUserHasReferences
		}
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	s.metrics.AdminActions.Inc(ctx, telemetry.ActionTypeAttr(domain.ActionDeleteUser))
	return nil
}
