package service

import (
	"context"
	"strings"
	"time"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds token settings for console sign-in
type AuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	config   AuthConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, config AuthConfig) AuthService {
	if config.TokenTTL == 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &authService{userRepo: userRepo, config: config}
}

// Login verifies credentials and issues an access token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if !domain.CanUseConsole(user.Role) {
		logger.WarnCtx(ctx, "console login refused for role",
			zap.String("user_id", user.ID),
			zap.String("role", user.Role),
		)
		return nil, ErrConsoleForbidden
	}

	token, expiresAt, err := middleware.GenerateToken(s.config.Secret, s.config.Issuer, user.ID, user.Email, user.Role, s.config.TokenTTL)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "admin signed in", zap.String("user_id", user.ID), zap.String("role", user.Role))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      toProfile(user),
	}, nil
}

// Profile returns the signed-in user's profile
func (s *authService) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile := toProfile(user)
	return &profile, nil
}

func toProfile(u *domain.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
