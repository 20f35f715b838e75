package service

import (
	"context"

	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/pricing"
	"github.com/stretchr/testify/mock"
)

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int64, error) {
	args := m.Called(ctx, filter)
	events, _ := args.Get(0).([]*domain.Event)
	return events, args.Get(1).(int64), args.Error(2)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*domain.Event)
	return event, args.Error(1)
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id string, update repository.EventStatusUpdate, audit func(*domain.EventStatusChange) *domain.AdminAction) (*domain.EventStatusChange, error) {
	args := m.Called(ctx, id, update, audit)
	change, _ := args.Get(0).(*domain.EventStatusChange)
	return change, args.Error(1)
}

func (m *mockEventRepo) UpdatePricing(ctx context.Context, id string, p pricing.Pricing, action *domain.AdminAction) (*domain.Event, error) {
	args := m.Called(ctx, id, p, action)
	event, _ := args.Get(0).(*domain.Event)
	return event, args.Error(1)
}

func (m *mockEventRepo) CountConfirmedBookings(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error) {
	args := m.Called(ctx, id, action)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id, role string, audit func(*domain.User) *domain.AdminAction) (*domain.User, error) {
	args := m.Called(ctx, id, role, audit)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id string, update domain.UserUpdate, action *domain.AdminAction) (*domain.User, error) {
	args := m.Called(ctx, id, update, action)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string, action *domain.AdminAction) (bool, error) {
	args := m.Called(ctx, id, action)
	return args.Bool(0), args.Error(1)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Stats(ctx context.Context, r domain.DateRange) (*domain.PaymentStats, error) {
	args := m.Called(ctx, r)
	stats, _ := args.Get(0).(*domain.PaymentStats)
	return stats, args.Error(1)
}

func (m *mockPaymentRepo) ListTransactions(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, int64, error) {
	args := m.Called(ctx, filter)
	payments, _ := args.Get(0).([]*domain.Payment)
	return payments, args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentRepo) Revenue(ctx context.Context, days int, groupBy string) ([]*domain.RevenuePoint, error) {
	args := m.Called(ctx, days, groupBy)
	points, _ := args.Get(0).([]*domain.RevenuePoint)
	return points, args.Error(1)
}

func (m *mockPaymentRepo) GetForRefund(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}

func (m *mockPaymentRepo) ReserveRefund(ctx context.Context, refund *domain.Refund) (float64, error) {
	args := m.Called(ctx, refund)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockPaymentRepo) CompleteRefund(ctx context.Context, refund *domain.Refund, bookingID string, markBookingRefunded bool, action *domain.AdminAction) error {
	args := m.Called(ctx, refund, bookingID, markBookingRefunded, action)
	return args.Error(0)
}

func (m *mockPaymentRepo) FailRefund(ctx context.Context, refundID string) error {
	return m.Called(ctx, refundID).Error(0)
}

func (m *mockPaymentRepo) ListDisputes(ctx context.Context, status string, page, limit int) ([]*domain.Dispute, int64, error) {
	args := m.Called(ctx, status, page, limit)
	disputes, _ := args.Get(0).([]*domain.Dispute)
	return disputes, args.Get(1).(int64), args.Error(2)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*domain.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *domain.Category) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) CountEvents(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockActionRepo struct {
	mock.Mock
}

func (m *mockActionRepo) Create(ctx context.Context, action *domain.AdminAction) error {
	return m.Called(ctx, action).Error(0)
}

func (m *mockActionRepo) List(ctx context.Context, filter domain.AdminActionFilter) ([]*domain.AdminAction, int64, error) {
	args := m.Called(ctx, filter)
	actions, _ := args.Get(0).([]*domain.AdminAction)
	return actions, args.Get(1).(int64), args.Error(2)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*domain.DashboardStats)
	return stats, args.Error(1)
}

// memTranslationRepo keeps translation documents in a map
type memTranslationRepo struct {
	docs map[string]*domain.TranslationDocument
}

func newMemTranslationRepo(docs ...*domain.TranslationDocument) *memTranslationRepo {
	r := &memTranslationRepo{docs: make(map[string]*domain.TranslationDocument)}
	for _, d := range docs {
		r.docs[d.Language+"/"+d.Namespace] = d
	}
	return r
}

func (r *memTranslationRepo) Get(_ context.Context, language, namespace string) (*domain.TranslationDocument, error) {
	return r.docs[language+"/"+namespace], nil
}

func (r *memTranslationRepo) ListLanguages(context.Context) (map[string]int, error) {
	out := make(map[string]int)
	for _, d := range r.docs {
		out[d.Language]++
	}
	return out, nil
}

func (r *memTranslationRepo) ListNamespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error) {
	docs, _ := r.ListByLanguage(ctx, language)
	infos := make([]*domain.NamespaceInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, &domain.NamespaceInfo{Namespace: d.Namespace})
	}
	return infos, nil
}

func (r *memTranslationRepo) ListByLanguage(_ context.Context, language string) ([]*domain.TranslationDocument, error) {
	var out []*domain.TranslationDocument
	for _, d := range r.docs {
		if d.Language == language {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memTranslationRepo) Create(_ context.Context, doc *domain.TranslationDocument) error {
	key := doc.Language + "/" + doc.Namespace
	if _, ok := r.docs[key]; ok {
		return repository.ErrDuplicate
	}
	r.docs[key] = doc
	return nil
}

func (r *memTranslationRepo) Upsert(_ context.Context, doc *domain.TranslationDocument) error {
	r.docs[doc.Language+"/"+doc.Namespace] = doc
	return nil
}

func (r *memTranslationRepo) Delete(_ context.Context, language, namespace string) (bool, error) {
	key := language + "/" + namespace
	if _, ok := r.docs[key]; !ok {
		return false, nil
	}
	delete(r.docs, key)
	return true, nil
}

// memEmailRepo keeps templates, logs and settings in memory
type memEmailRepo struct {
	templates []*domain.EmailTemplate
	logs      []*domain.EmailLog
	settings  []*domain.EmailSetting
	lookups   int
	// settingsReads counts ListSettings calls
	settingsReads int
}

func (r *memEmailRepo) ListTemplates(_ context.Context, language string) ([]*domain.EmailTemplate, error) {
	var out []*domain.EmailTemplate
	for _, t := range r.templates {
		if language == "" || t.Language == language {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memEmailRepo) GetTemplate(_ context.Context, id string) (*domain.EmailTemplate, error) {
	for _, t := range r.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memEmailRepo) FindActiveTemplate(_ context.Context, name, language string) (*domain.EmailTemplate, error) {
	r.lookups++
	for _, t := range r.templates {
		if t.Name == name && t.Language == language && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memEmailRepo) CreateTemplate(_ context.Context, t *domain.EmailTemplate) error {
	for _, existing := range r.templates {
		if existing.Name == t.Name && existing.Language == t.Language {
			return repository.ErrDuplicate
		}
	}
	t.ID = "tpl-new"
	r.templates = append(r.templates, t)
	return nil
}

func (r *memEmailRepo) UpdateTemplate(_ context.Context, t *domain.EmailTemplate) (bool, error) {
	for i, existing := range r.templates {
		if existing.ID == t.ID {
			r.templates[i] = t
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmailRepo) DeleteTemplate(_ context.Context, id string) (bool, error) {
	for i, t := range r.templates {
		if t.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memEmailRepo) CreateLog(_ context.Context, log *domain.EmailLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *memEmailRepo) ListLogs(_ context.Context, _ domain.EmailLogFilter) ([]*domain.EmailLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

func (r *memEmailRepo) ListSettings(context.Context) ([]*domain.EmailSetting, error) {
	r.settingsReads++
	return r.settings, nil
}

func (r *memEmailRepo) UpdateSetting(_ context.Context, key, value, updatedBy string) (*domain.EmailSetting, error) {
	for _, s := range r.settings {
		if s.SettingKey == key {
			s.SettingValue = value
			s.UpdatedBy = updatedBy
			return s, nil
		}
	}
	return nil, nil
}

// memPushRepo keeps push templates, settings and logs in memory
type memPushRepo struct {
	templates []*domain.PushTemplate
	settings  *domain.PushSettings
	logs      []*domain.PushLog
}

func (r *memPushRepo) ListTemplates(context.Context) ([]*domain.PushTemplate, error) {
	return r.templates, nil
}

func (r *memPushRepo) GetTemplate(_ context.Context, id string) (*domain.PushTemplate, error) {
	for _, t := range r.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memPushRepo) FindActiveTemplate(_ context.Context, key, language string) (*domain.PushTemplate, error) {
	for _, t := range r.templates {
		if t.Key == key && t.Language == language && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memPushRepo) CreateTemplate(_ context.Context, t *domain.PushTemplate) error {
	for _, existing := range r.templates {
		if existing.Key == t.Key && existing.Language == t.Language {
			return repository.ErrDuplicate
		}
	}
	r.templates = append(r.templates, t)
	return nil
}

func (r *memPushRepo) UpdateTemplate(_ context.Context, t *domain.PushTemplate) (bool, error) {
	for i, existing := range r.templates {
		if existing.ID == t.ID {
			r.templates[i] = t
			return true, nil
		}
	}
	return false, nil
}

func (r *memPushRepo) DeleteTemplate(_ context.Context, id string) (bool, error) {
	for i, t := range r.templates {
		if t.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memPushRepo) GetSettings(context.Context) (*domain.PushSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	copied := *r.settings
	return &copied, nil
}

func (r *memPushRepo) SaveSettings(_ context.Context, s *domain.PushSettings) error {
	copied := *s
	r.settings = &copied
	return nil
}

func (r *memPushRepo) CreateLog(_ context.Context, log *domain.PushLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *memPushRepo) ListLogs(_ context.Context, _ domain.PushLogFilter) ([]*domain.PushLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

var (
	adminActor     = domain.Actor{UserID: "admin-1", Email: "admin@beout.app", Role: domain.RoleAdmin}
	moderatorActor = domain.Actor{UserID: "mod-1", Email: "mod@beout.app", Role: domain.RoleModerator}
)
