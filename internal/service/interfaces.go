package service

import (
	"context"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/pkg/listing"
	"github.com/beout/beout-admin/pkg/pricing"
)

// AuthService defines the interface for console sign-in
type AuthService interface {
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Profile returns the signed-in user's profile
	Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

// DashboardService defines the interface for dashboard counters
type DashboardService interface {
	// Stats returns the dashboard counters and records the view
	Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error)
}

// EventService defines the interface for event moderation
type EventService interface {
	List(ctx context.Context, query *dto.ListEventsQuery) ([]*domain.Event, int64, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventStatusRequest) (*domain.Event, error)
	UpdatePricing(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventPricingRequest) (*domain.Event, error)
	Quote(ctx context.Context, id string, query *dto.PricingQuoteQuery) (*pricing.Quote, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// UserService defines the interface for user administration
type UserService interface {
	List(ctx context.Context, query *dto.ListUsersQuery) ([]*domain.User, int64, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRoleRequest) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// BookingService defines the interface for booking oversight
type BookingService interface {
	List(ctx context.Context, query *dto.ListBookingsQuery) ([]*domain.Booking, int64, error)
}

// LogService defines the interface for the admin action log
type LogService interface {
	List(ctx context.Context, query *dto.ListAdminLogsQuery) ([]*domain.AdminAction, int64, error)
}

// PaymentService defines the interface for payment monitoring and refunds
type PaymentService interface {
	Stats(ctx context.Context, query *dto.PaymentStatsQuery) (*domain.PaymentStats, error)
	Transactions(ctx context.Context, query *dto.ListTransactionsQuery) ([]*domain.Payment, int64, error)
	Revenue(ctx context.Context, query *dto.RevenueQuery) (*dto.RevenueResponse, error)
	Refund(ctx context.Context, actor domain.Actor, req *dto.RefundRequest) (*dto.RefundResponse, error)
	Disputes(ctx context.Context, query *dto.ListDisputesQuery) ([]*domain.Dispute, int64, error)
}

// CategoryService defines the interface for category management
type CategoryService interface {
	List(ctx context.Context, query *dto.ListCategoriesQuery) (listing.Page[*domain.Category], error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, req *dto.CategoryRequest) (*domain.Category, error)
	Update(ctx context.Context, id string, req *dto.CategoryRequest) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// TranslationService defines the interface for UI string management
type TranslationService interface {
	Languages(ctx context.Context) ([]dto.LanguageInfo, error)
	Stats(ctx context.Context) (*dto.TranslationStatsResponse, error)
	Namespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error)
	Get(ctx context.Context, language, namespace string) (*domain.TranslationDocument, error)
	Replace(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error)
	Create(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error)
	Delete(ctx context.Context, language, namespace string) error
	Upload(ctx context.Context, actor domain.Actor, req *dto.UploadTranslationsRequest) (*domain.TranslationDocument, error)
	Validate(ctx context.Context, language, namespace string) (*dto.ValidateTranslationsResponse, error)
}

// EmailService defines the interface for email templates and delivery
type EmailService interface {
	ListTemplates(ctx context.Context, query *dto.ListEmailTemplatesQuery) ([]*domain.EmailTemplate, error)
	GetTemplate(ctx context.Context, id string) (*domain.EmailTemplate, error)
	CreateTemplate(ctx context.Context, actor domain.Actor, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error)
	UpdateTemplate(ctx context.Context, actor domain.Actor, id string, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	SendTest(ctx context.Context, actor domain.Actor, id string, req *dto.TestEmailRequest) (string, error)
	ListLogs(ctx context.Context, query *dto.ListEmailLogsQuery) ([]*domain.EmailLog, int64, error)
	ListSettings(ctx context.Context) ([]*domain.EmailSetting, error)
	UpdateSetting(ctx context.Context, actor domain.Actor, key string, req *dto.UpdateEmailSettingRequest) (*domain.EmailSetting, error)
	BulkSend(ctx context.Context, req *dto.BulkSendRequest) (*dto.BulkSendResponse, error)
}

// PushService defines the interface for push templates and dispatch
type PushService interface {
	ListTemplates(ctx context.Context, query *dto.ListPushTemplatesQuery) (listing.Page[*domain.PushTemplate], error)
	GetTemplate(ctx context.Context, id string) (*domain.PushTemplate, error)
	CreateTemplate(ctx context.Context, req *dto.PushTemplateRequest) (*domain.PushTemplate, error)
	UpdateTemplate(ctx context.Context, id string, req *dto.PushTemplateRequest) (*domain.PushTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	GetSettings(ctx context.Context) (*domain.PushSettings, error)
	UpdateSettings(ctx context.Context, actor domain.Actor, req *dto.UpdatePushSettingsRequest) (*domain.PushSettings, error)
	SendTest(ctx context.Context, actor domain.Actor, req *dto.TestPushRequest) (*dto.TestPushResponse, error)
	ListLogs(ctx context.Context, query *dto.ListPushLogsQuery) ([]*domain.PushLog, int64, error)
}
