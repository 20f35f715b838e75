package service

import (
	"context"
	"testing"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		id      string
		target  *domain.User
		role    string
		wantErr error
	}{
		{name: "self change", actor: adminActor, id: adminActor.UserID, role: domain.RoleUser, wantErr: ErrSelfRoleChange},
		{name: "moderator grants admin", actor: moderatorActor, id: "u-1", target: &domain.User{ID: "u-1", Role: domain.RoleUser}, role: domain.RoleAdmin, wantErr: ErrAdminOnly},
		{name: "moderator demotes admin", actor: moderatorActor, id: "u-1", target: &domain.User{ID: "u-1", Role: domain.RoleAdmin}, role: domain.RoleUser, wantErr: ErrAdminOnly},
		{name: "unknown user", actor: adminActor, id: "u-1", role: domain.RoleOrganizer, wantErr: ErrUserNotFound},
		{name: "moderator promotes organizer", actor: moderatorActor, id: "u-1", target: &domain.User{ID: "u-1", Email: "o@x.io", Role: domain.RoleUser}, role: domain.RoleOrganizer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			repo.On("GetByID", ctx, tt.id).Return(tt.target, nil)

			var audited *domain.AdminAction
			repo.On("UpdateRole", ctx, tt.id, tt.role, mock.Anything).
				Run(func(args mock.Arguments) {
					audit := args.Get(3).(func(*domain.User) *domain.AdminAction)
					audited = audit(&domain.User{ID: tt.id, Email: "o@x.io", Role: tt.role})
				}).
				Return(&domain.User{ID: tt.id, Role: tt.role}, nil)

			user, err := NewUserService(repo, nil).UpdateRole(ctx, tt.actor, tt.id, &dto.UpdateUserRoleRequest{Role: tt.role})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, user.Role)
			require.NotNil(t, audited)
			assert.Equal(t, domain.RoleUser, audited.Metadata["old_role"])
			assert.Equal(t, tt.role, audited.Metadata["new_role"])
			assert.Equal(t, "o@x.io", audited.Metadata["target_user_email"])
		})
	}
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(mockUserRepo)
	svc := NewUserService(repo, nil)

	_, err := svc.Update(ctx, adminActor, "u-1", &dto.UpdateUserRequest{})
	assert.True(t, IsValidation(err))

	_, err = svc.Update(ctx, adminActor, adminActor.UserID, &dto.UpdateUserRequest{IsActive: boolPtr(false)})
	assert.True(t, IsValidation(err))

	repo.On("Update", ctx, "u-1", domain.UserUpdate{FirstName: strPtr("Ana")}, mock.AnythingOfType("*domain.AdminAction")).
		Return(&domain.User{ID: "u-1", FirstName: "Ana"}, nil)
	user, err := svc.Update(ctx, adminActor, "u-1", &dto.UpdateUserRequest{FirstName: strPtr("Ana")})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.FirstName)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("moderators cannot delete", func(t *testing.T) {
		err := NewUserService(new(mockUserRepo), nil).Delete(ctx, moderatorActor, "u-1")
		assert.ErrorIs(t, err, ErrAdminOnly)
	})

	t.Run("cannot delete self", func(t *testing.T) {
		err := NewUserService(new(mockUserRepo), nil).Delete(ctx, adminActor, adminActor.UserID)
		assert.ErrorIs(t, err, ErrSelfDelete)
	})

	t.Run("referenced user", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Email: "a@b.c"}, nil)
		repo.On("Delete", ctx, "u-1", mock.Anything).Return(false, repository.ErrReferenced)

		err := NewUserService(repo, nil).Delete(ctx, adminActor, "u-1")
		assert.ErrorIs(t, err, ErrUserHasReferences)
	})

	t.Run("deletes", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Email: "a@b.c"}, nil)
		repo.On("Delete", ctx, "u-1", mock.MatchedBy(func(a *domain.AdminAction) bool {
			return a.ActionType == domain.ActionDeleteUser && a.Metadata["target_user_email"] == "a@b.c"
		})).Return(true, nil)

		assert.NoError(t, NewUserService(repo, nil).Delete(ctx, adminActor, "u-1"))
		repo.AssertExpectations(t)
	})
}
