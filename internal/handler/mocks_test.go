package handler

import (
	"context"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/pkg/listing"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *mockAuthService) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

type mockEventService struct{ mock.Mock }

func (m *mockEventService) List(ctx context.Context, query *dto.ListEventsQuery) ([]*domain.Event, int64, error) {
	args := m.Called(ctx, query)
	events, _ := args.Get(0).([]*domain.Event)
	return events, args.Get(1).(int64), args.Error(2)
}

func (m *mockEventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventStatusRequest) (*domain.Event, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventService) UpdatePricing(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateEventPricingRequest) (*domain.Event, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventService) Quote(ctx context.Context, id string, query *dto.PricingQuoteQuery) (*pricing.Quote, error) {
	args := m.Called(ctx, id, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *mockEventService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context, query *dto.ListUsersQuery) ([]*domain.User, int64, error) {
	args := m.Called(ctx, query)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) UpdateRole(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRoleRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, actor domain.Actor, id string, req *dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockPaymentService struct{ mock.Mock }

func (m *mockPaymentService) Stats(ctx context.Context, query *dto.PaymentStatsQuery) (*domain.PaymentStats, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentStats), args.Error(1)
}

func (m *mockPaymentService) Transactions(ctx context.Context, query *dto.ListTransactionsQuery) ([]*domain.Payment, int64, error) {
	args := m.Called(ctx, query)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentService) Revenue(ctx context.Context, query *dto.RevenueQuery) (*dto.RevenueResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RevenueResponse), args.Error(1)
}

func (m *mockPaymentService) Refund(ctx context.Context, actor domain.Actor, req *dto.RefundRequest) (*dto.RefundResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RefundResponse), args.Error(1)
}

func (m *mockPaymentService) Disputes(ctx context.Context, query *dto.ListDisputesQuery) ([]*domain.Dispute, int64, error) {
	args := m.Called(ctx, query)
	disputes, _ := args.Get(0).([]*domain.Dispute)
	return disputes, args.Get(1).(int64), args.Error(2)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) List(ctx context.Context, query *dto.ListCategoriesQuery) (listing.Page[*domain.Category], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(listing.Page[*domain.Category]), args.Error(1)
}

func (m *mockCategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, id string, req *dto.CategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockTranslationService struct{ mock.Mock }

func (m *mockTranslationService) Languages(ctx context.Context) ([]dto.LanguageInfo, error) {
	args := m.Called(ctx)
	languages, _ := args.Get(0).([]dto.LanguageInfo)
	return languages, args.Error(1)
}

func (m *mockTranslationService) Stats(ctx context.Context) (*dto.TranslationStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranslationStatsResponse), args.Error(1)
}

func (m *mockTranslationService) Namespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error) {
	args := m.Called(ctx, language)
	namespaces, _ := args.Get(0).([]*domain.NamespaceInfo)
	return namespaces, args.Error(1)
}

func (m *mockTranslationService) Get(ctx context.Context, language, namespace string) (*domain.TranslationDocument, error) {
	args := m.Called(ctx, language, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationDocument), args.Error(1)
}

func (m *mockTranslationService) Replace(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error) {
	args := m.Called(ctx, actor, language, namespace, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationDocument), args.Error(1)
}

func (m *mockTranslationService) Create(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error) {
	args := m.Called(ctx, actor, language, namespace, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationDocument), args.Error(1)
}

func (m *mockTranslationService) Delete(ctx context.Context, language, namespace string) error {
	return m.Called(ctx, language, namespace).Error(0)
}

func (m *mockTranslationService) Upload(ctx context.Context, actor domain.Actor, req *dto.UploadTranslationsRequest) (*domain.TranslationDocument, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TranslationDocument), args.Error(1)
}

func (m *mockTranslationService) Validate(ctx context.Context, language, namespace string) (*dto.ValidateTranslationsResponse, error) {
	args := m.Called(ctx, language, namespace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ValidateTranslationsResponse), args.Error(1)
}

type mockEmailService struct{ mock.Mock }

func (m *mockEmailService) ListTemplates(ctx context.Context, query *dto.ListEmailTemplatesQuery) ([]*domain.EmailTemplate, error) {
	args := m.Called(ctx, query)
	templates, _ := args.Get(0).([]*domain.EmailTemplate)
	return templates, args.Error(1)
}

func (m *mockEmailService) GetTemplate(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *mockEmailService) CreateTemplate(ctx context.Context, actor domain.Actor, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *mockEmailService) UpdateTemplate(ctx context.Context, actor domain.Actor, id string, req *dto.EmailTemplateRequest) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *mockEmailService) DeleteTemplate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmailService) SendTest(ctx context.Context, actor domain.Actor, id string, req *dto.TestEmailRequest) (string, error) {
	args := m.Called(ctx, actor, id, req)
	return args.String(0), args.Error(1)
}

func (m *mockEmailService) ListLogs(ctx context.Context, query *dto.ListEmailLogsQuery) ([]*domain.EmailLog, int64, error) {
	args := m.Called(ctx, query)
	logs, _ := args.Get(0).([]*domain.EmailLog)
	return logs, args.Get(1).(int64), args.Error(2)
}

func (m *mockEmailService) ListSettings(ctx context.Context) ([]*domain.EmailSetting, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).([]*domain.EmailSetting)
	return settings, args.Error(1)
}

func (m *mockEmailService) UpdateSetting(ctx context.Context, actor domain.Actor, key string, req *dto.UpdateEmailSettingRequest) (*domain.EmailSetting, error) {
	args := m.Called(ctx, actor, key, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailSetting), args.Error(1)
}

func (m *mockEmailService) BulkSend(ctx context.Context, req *dto.BulkSendRequest) (*dto.BulkSendResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BulkSendResponse), args.Error(1)
}

type mockPushService struct{ mock.Mock }

func (m *mockPushService) ListTemplates(ctx context.Context, query *dto.ListPushTemplatesQuery) (listing.Page[*domain.PushTemplate], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(listing.Page[*domain.PushTemplate]), args.Error(1)
}

func (m *mockPushService) GetTemplate(ctx context.Context, id string) (*domain.PushTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushTemplate), args.Error(1)
}

func (m *mockPushService) CreateTemplate(ctx context.Context, req *dto.PushTemplateRequest) (*domain.PushTemplate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushTemplate), args.Error(1)
}

func (m *mockPushService) UpdateTemplate(ctx context.Context, id string, req *dto.PushTemplateRequest) (*domain.PushTemplate, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushTemplate), args.Error(1)
}

func (m *mockPushService) DeleteTemplate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPushService) GetSettings(ctx context.Context) (*domain.PushSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushSettings), args.Error(1)
}

func (m *mockPushService) UpdateSettings(ctx context.Context, actor domain.Actor, req *dto.UpdatePushSettingsRequest) (*domain.PushSettings, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PushSettings), args.Error(1)
}

func (m *mockPushService) SendTest(ctx context.Context, actor domain.Actor, req *dto.TestPushRequest) (*dto.TestPushResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TestPushResponse), args.Error(1)
}

func (m *mockPushService) ListLogs(ctx context.Context, query *dto.ListPushLogsQuery) ([]*domain.PushLog, int64, error) {
	args := m.Called(ctx, query)
	logs, _ := args.Get(0).([]*domain.PushLog)
	return logs, args.Get(1).(int64), args.Error(2)
}
