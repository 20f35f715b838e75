package repository

import (
	"context"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/pkg/pricing"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// List retrieves events with pagination and filters
	List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int64, error)
	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// UpdateStatus changes status fields and records the admin action built by audit in the same transaction
	UpdateStatus(ctx context.Context, id string, update EventStatusUpdate, audit func(*domain.EventStatusChange) *domain.AdminAction) (*domain.EventStatusChange, error)
	// UpdatePricing stores reconciled prices and records the admin action
	UpdatePricing(ctx context.Context, id string, p pricing.Pricing, action *domain.AdminAction) (*domain.Event, error)
	// CountConfirmedBookings counts confirmed bookings of an event
	CountConfirmedBookings(ctx context.Context, id string) (int64, error)
	// Delete removes an event and records the admin action
	Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error)
}

// EventStatusUpdate holds the status fields to change; nil means unchanged
type EventStatusUpdate struct {
	Status           *string
	ModerationStatus *string
	AdminNotes       *string
	ApprovedBy       string
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user with its password hash by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List retrieves users with pagination and filters
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error)
	// UpdateRole changes a user's role and records the admin action
	UpdateRole(ctx context.Context, id, role string, audit func(*domain.User) *domain.AdminAction) (*domain.User, error)
	// Update changes profile fields and records the admin action
	Update(ctx context.Context, id string, update domain.UserUpdate, action *domain.AdminAction) (*domain.User, error)
	// Delete removes a user and records the admin action
	Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error)
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// List retrieves bookings with pagination and filters
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int64, error)
}

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Stats aggregates transactions, refunds and disputes in a range
	Stats(ctx context.Context, r domain.DateRange) (*domain.PaymentStats, error)
	// ListTransactions retrieves transactions with pagination and filters
	ListTransactions(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, int64, error)
	// Revenue groups revenue by day or month over the last days
	Revenue(ctx context.Context, days int, groupBy string) ([]*domain.RevenuePoint, error)
	// GetForRefund retrieves a payment by ID or Stripe payment ID with its refunded total
	GetForRefund(ctx context.Context, paymentID string) (*domain.Payment, error)
	// ReserveRefund locks the payment, re-checks the balance and inserts a pending refund.
	// It returns the refundable balance before this refund.
	ReserveRefund(ctx context.Context, refund *domain.Refund) (float64, error)
	// CompleteRefund stores the provider result, optionally marks the booking refunded, and records the admin action
	CompleteRefund(ctx context.Context, refund *domain.Refund, bookingID string, markBookingRefunded bool, action *domain.AdminAction) error
	// FailRefund releases a pending refund the provider refused
	FailRefund(ctx context.Context, refundID string) error
	// ListDisputes retrieves disputes with pagination
	ListDisputes(ctx context.Context, status string, page, limit int) ([]*domain.Dispute, int64, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// List retrieves all categories with their active event counts
	List(ctx context.Context) ([]*domain.Category, error)
	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	// Create creates a category
	Create(ctx context.Context, c *domain.Category) error
	// Update updates a category
	Update(ctx context.Context, c *domain.Category) (bool, error)
	// CountEvents counts events linked to a category
	CountEvents(ctx context.Context, id string) (int64, error)
	// Delete removes a category
	Delete(ctx context.Context, id string) (bool, error)
}

// TranslationRepository defines the interface for translation data access
type TranslationRepository interface {
	// Get retrieves one namespace of one language
	Get(ctx context.Context, language, namespace string) (*domain.TranslationDocument, error)
	// ListLanguages lists languages that have stored namespaces with their count
	ListLanguages(ctx context.Context) (map[string]int, error)
	// ListNamespaces lists namespaces stored for a language
	ListNamespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error)
	// ListByLanguage retrieves every namespace of a language
	ListByLanguage(ctx context.Context, language string) ([]*domain.TranslationDocument, error)
	// Create inserts a namespace, failing on duplicates
	Create(ctx context.Context, doc *domain.TranslationDocument) error
	// Upsert replaces a namespace, creating it when missing
	Upsert(ctx context.Context, doc *domain.TranslationDocument) error
	// Delete removes a namespace
	Delete(ctx context.Context, language, namespace string) (bool, error)
}

// EmailRepository defines the interface for email template, log and settings data access
type EmailRepository interface {
	// ListTemplates retrieves templates, optionally for one language
	ListTemplates(ctx context.Context, language string) ([]*domain.EmailTemplate, error)
	// GetTemplate retrieves a template by ID
	GetTemplate(ctx context.Context, id string) (*domain.EmailTemplate, error)
	// FindActiveTemplate retrieves an active template by name and language
	FindActiveTemplate(ctx context.Context, name, language string) (*domain.EmailTemplate, error)
	// CreateTemplate creates a template
	CreateTemplate(ctx context.Context, t *domain.EmailTemplate) error
	// UpdateTemplate updates a template
	UpdateTemplate(ctx context.Context, t *domain.EmailTemplate) (bool, error)
	// DeleteTemplate removes a template
	DeleteTemplate(ctx context.Context, id string) (bool, error)
	// CreateLog records a delivery attempt
	CreateLog(ctx context.Context, log *domain.EmailLog) error
	// ListLogs retrieves delivery logs with pagination and filters
	ListLogs(ctx context.Context, filter domain.EmailLogFilter) ([]*domain.EmailLog, int64, error)
	// ListSettings retrieves all settings ordered by key
	ListSettings(ctx context.Context) ([]*domain.EmailSetting, error)
	// UpdateSetting changes a setting value
	UpdateSetting(ctx context.Context, key, value, updatedBy string) (*domain.EmailSetting, error)
}

// PushRepository defines the interface for push template, settings and log data access
type PushRepository interface {
	// ListTemplates retrieves all push templates
	ListTemplates(ctx context.Context) ([]*domain.PushTemplate, error)
	// GetTemplate retrieves a template by ID
	GetTemplate(ctx context.Context, id string) (*domain.PushTemplate, error)
	// FindActiveTemplate retrieves an active template by key and language
	FindActiveTemplate(ctx context.Context, key, language string) (*domain.PushTemplate, error)
	// CreateTemplate creates a template
	CreateTemplate(ctx context.Context, t *domain.PushTemplate) error
	// UpdateTemplate updates a template
	UpdateTemplate(ctx context.Context, t *domain.PushTemplate) (bool, error)
	// DeleteTemplate removes a template
	DeleteTemplate(ctx context.Context, id string) (bool, error)
	// GetSettings retrieves saved settings, nil when none were saved
	GetSettings(ctx context.Context) (*domain.PushSettings, error)
	// SaveSettings stores settings
	SaveSettings(ctx context.Context, s *domain.PushSettings) error
	// CreateLog records a dispatch
	CreateLog(ctx context.Context, log *domain.PushLog) error
	// ListLogs retrieves dispatch logs with pagination and filters
	ListLogs(ctx context.Context, filter domain.PushLogFilter) ([]*domain.PushLog, int64, error)
}

// AdminActionRepository defines the interface for the admin action log
type AdminActionRepository interface {
	// Create records an admin action
	Create(ctx context.Context, action *domain.AdminAction) error
	// List retrieves actions with pagination and filters
	List(ctx context.Context, filter domain.AdminActionFilter) ([]*domain.AdminAction, int64, error)
}

// StatsRepository defines the interface for dashboard aggregates
type StatsRepository interface {
	// Dashboard computes the dashboard counters
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}
