package service

import (
	"context"
	"testing"
	"time"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash := hashPassword(t, "s3cret!")

	tests := []struct {
		name     string
		user     *domain.User
		password string
		wantErr  error
	}{
		{name: "admin", user: &domain.User{ID: "u-1", Email: "admin@beout.app", Role: domain.RoleAdmin, IsActive: true, PasswordHash: hash}, password: "s3cret!"},
		{name: "moderator", user: &domain.User{ID: "u-2", Email: "admin@beout.app", Role: domain.RoleModerator, IsActive: true, PasswordHash: hash}, password: "s3cret!"},
		{name: "unknown email", password: "s3cret!", wantErr: ErrInvalidCredentials},
		{name: "wrong password", user: &domain.User{ID: "u-1", Role: domain.RoleAdmin, IsActive: true, PasswordHash: hash}, password: "nope", wantErr: ErrInvalidCredentials},
		{name: "oauth account", user: &domain.User{ID: "u-1", Role: domain.RoleAdmin, IsActive: true}, password: "s3cret!", wantErr: ErrInvalidCredentials},
		{name: "regular user", user: &domain.User{ID: "u-3", Role: domain.RoleUser, IsActive: true, PasswordHash: hash}, password: "s3cret!", wantErr: ErrConsoleForbidden},
		{name: "disabled", user: &domain.User{ID: "u-1", Role: domain.RoleAdmin, PasswordHash: hash}, password: "s3cret!", wantErr: ErrAccountDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepo)
			repo.On("GetByEmail", ctx, "admin@beout.app").Return(tt.user, nil)

			svc := NewAuthService(repo, AuthConfig{Secret: "test-secret", Issuer: "beout-admin", TokenTTL: time.Hour})
			resp, err := svc.Login(ctx, &dto.LoginRequest{Email: " Admin@Beout.app ", Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.Role, resp.User.Role)

			claims, err := middleware.ParseToken(resp.Token, "test-secret", "beout-admin")
			require.NoError(t, err)
			assert.Equal(t, tt.user.ID, claims.UserID)
			assert.Equal(t, tt.user.Role, claims.Role)
		})
	}
}
