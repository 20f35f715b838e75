package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "handler-test-secret"
	testIssuer = "beout"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router       *gin.Engine
	audit        *middleware.AuditLogger
	auth         *mockAuthService
	events       *mockEventService
	users        *mockUserService
	payments     *mockPaymentService
	categories   *mockCategoryService
	translations *mockTranslationService
	emails       *mockEmailService
	push         *mockPushService
}

func newTestServer(t *testing.T, checks map[string]Pinger, opts ...func(*RouterConfig)) *testServer {
	t.Helper()

	s := &testServer{
		auth:         new(mockAuthService),
		events:       new(mockEventService),
		users:        new(mockUserService),
		payments:     new(mockPaymentService),
		categories:   new(mockCategoryService),
		translations: new(mockTranslationService),
		emails:       new(mockEmailService),
		push:         new(mockPushService),
	}

	auditCfg := middleware.DefaultAuditConfig(nil)
	auditCfg.FlushInterval = 10 * time.Millisecond
	s.audit = middleware.NewAuditLogger(auditCfg)
	s.audit.SetTestMode(true)
	t.Cleanup(func() { _ = s.audit.Close() })

	handlers := &Handlers{
		Health:      NewHealthHandler(checks),
		Auth:        NewAuthHandler(s.auth),
		Dashboard:   NewDashboardHandler(nil),
		Event:       NewEventHandler(s.events),
		User:        NewUserHandler(s.users),
		Booking:     NewBookingHandler(nil, nil),
		Payment:     NewPaymentHandler(s.payments),
		Category:    NewCategoryHandler(s.categories),
		Translation: NewTranslationHandler(s.translations, 1024),
		Email:       NewEmailHandler(s.emails),
		Push:        NewPushHandler(s.push),
	}

	cfg := RouterConfig{
		ServiceName: "beout-admin-test",
		Logger:      logger.NewNop(),
		CORS:        middleware.DefaultCORSConfig("http://localhost:5173"),
		JWT:         &middleware.JWTConfig{Secret: testSecret, Issuer: testIssuer},
		Audit:       s.audit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	router, err := NewRouter(handlers, cfg)
	require.NoError(t, err)
	s.router = router
	return s
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, _, err := middleware.GenerateToken(testSecret, testIssuer, userID, userID+"@beout.app", role, time.Hour)
	require.NoError(t, err)
	return token
}

// do sends a JSON request as an admin with the given role. An empty role
// sends no token.
func (s *testServer) do(t *testing.T, method, path string, body any, role string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin-1", role))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// auditEntries flushes the audit logger and returns what it captured
func (s *testServer) auditEntries(t *testing.T) []*middleware.AuditEntry {
	t.Helper()
	require.NoError(t, s.audit.Close())
	return s.audit.GetTestEntries()
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorInfo `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("missing token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/admin/events", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("role outside the console", func(t *testing.T) {
		for _, role := range []string{"user", "organizer"} {
			w := s.do(t, http.MethodGet, "/api/admin/events", nil, role)
			assert.Equal(t, http.StatusForbidden, w.Code, role)
		}
	})

	t.Run("foreign signature", func(t *testing.T) {
		token, _, err := middleware.GenerateToken("other-secret", testIssuer, "admin-1", "a@beout.app", "admin", time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t, nil)

	s.auth.On("Login", mock.Anything, &dto.LoginRequest{Email: "admin@beout.app", Password: "secret"}).
		Return(&dto.LoginResponse{Token: "tok", User: dto.ProfileResponse{ID: "admin-1", Role: "admin"}}, nil)
	s.auth.On("Login", mock.Anything, &dto.LoginRequest{Email: "admin@beout.app", Password: "wrong"}).
		Return(nil, service.ErrInvalidCredentials)

	w := s.do(t, http.MethodPost, "/auth/login", gin.H{"email": "admin@beout.app", "password": "secret"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	assert.Equal(t, "tok", resp.Token)

	w = s.do(t, http.MethodPost, "/auth/login", gin.H{"email": "admin@beout.app", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w).Error.Code)

	w = s.do(t, http.MethodPost, "/auth/login", gin.H{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, s.auditEntries(t))
}

func TestRouter_LoginRateLimit(t *testing.T) {
	login := func(s *testServer, forwardedFor string) int {
		raw, _ := json.Marshal(gin.H{"email": "admin@beout.app", "password": "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:41000"
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
			req.Header.Set("X-Real-IP", forwardedFor)
		}
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w.Code
	}

	tests := []struct {
		name           string
		trustedProxies []string
		rotate         bool
		wantPassed     int
	}{
		{name: "same peer without forwarded headers", wantPassed: 5},
		{name: "rotated forwarded headers from an untrusted peer", rotate: true, wantPassed: 5},
		{name: "rotated forwarded headers from a trusted proxy", trustedProxies: []string{"203.0.113.0/24"}, rotate: true, wantPassed: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := middleware.NewLocalRateLimiter(middleware.LoginRateLimitConfig())
			t.Cleanup(limiter.Stop)

			s := newTestServer(t, nil, func(cfg *RouterConfig) {
				cfg.LoginLimiter = limiter
				cfg.TrustedProxies = tt.trustedProxies
			})
			s.auth.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

			passed := 0
			for i := 0; i < 50; i++ {
				forwardedFor := ""
				if tt.rotate {
					forwardedFor = fmt.Sprintf("198.51.100.%d", i+1)
				}
				code := login(s, forwardedFor)
				if code != http.StatusTooManyRequests {
					assert.Equal(t, http.StatusUnauthorized, code)
					passed++
				}
			}
			assert.Equal(t, tt.wantPassed, passed)
		})
	}
}

func TestNewRouter_InvalidTrustedProxy(t *testing.T) {
	_, err := NewRouter(&Handlers{}, RouterConfig{
		Logger:         logger.NewNop(),
		TrustedProxies: []string{"not-an-address"},
	})
	assert.Error(t, err)
}

func TestRouter_Profile(t *testing.T) {
	s := newTestServer(t, nil)
	s.auth.On("Profile", mock.Anything, "admin-1").
		Return(&dto.ProfileResponse{ID: "admin-1", Email: "admin-1@beout.app", Role: "moderator"}, nil)

	for _, path := range []string{"/user/profile", "/api/admin/profile"} {
		w := s.do(t, http.MethodGet, path, nil, "moderator")
		require.Equal(t, http.StatusOK, w.Code, path)

		var profile dto.ProfileResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &profile))
		assert.Equal(t, "moderator", profile.Role)
	}
}

func TestHealthHandler(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		s := newTestServer(t, map[string]Pinger{
			"postgres": PingFunc(func(context.Context) error { return nil }),
			"redis":    nil,
		})

		w := s.do(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodGet, "/ready", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "redis")
	})

	t.Run("dependency down", func(t *testing.T) {
		s := newTestServer(t, map[string]Pinger{
			"postgres": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
		})

		w := s.do(t, http.MethodGet, "/ready", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := decode(t, w)
		assert.Equal(t, response.ErrCodeServiceUnavailable, env.Error.Code)
		assert.Equal(t, "connection refused", env.Error.Details["postgres"])
	})
}
