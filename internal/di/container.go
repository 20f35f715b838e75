package di

import (
	"context"
	"fmt"
	"time"

	"github.com/beout/beout-admin/internal/cache"
	"github.com/beout/beout-admin/internal/gateway"
	"github.com/beout/beout-admin/internal/handler"
	"github.com/beout/beout-admin/internal/mailer"
	"github.com/beout/beout-admin/internal/notifier"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/internal/service"
	"github.com/beout/beout-admin/pkg/config"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/beout/beout-admin/pkg/kafka"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/redis"
	"github.com/beout/beout-admin/pkg/telemetry"
	"go.uber.org/zap"
)

// Container holds all dependencies for the admin service
type Container struct {
	// Infrastructure
	DB       *database.PostgresDB
	Redis    *redis.Client
	Producer kafka.Producer
	Cache    cache.Cache
	Gateway  gateway.RefundGateway
	Mailer   mailer.Mailer
	Notifier notifier.Publisher
	Metrics  *telemetry.AdminMetrics

	// Repositories
	EventRepo       repository.EventRepository
	UserRepo        repository.UserRepository
	BookingRepo     repository.BookingRepository
	PaymentRepo     repository.PaymentRepository
	CategoryRepo    repository.CategoryRepository
	TranslationRepo repository.TranslationRepository
	EmailRepo       repository.EmailRepository
	PushRepo        repository.PushRepository
	ActionRepo      *repository.PostgresAdminActionRepository
	StatsRepo       repository.StatsRepository

	// Services
	AuthService        service.AuthService
	DashboardService   service.DashboardService
	EventService       service.EventService
	UserService        service.UserService
	BookingService     service.BookingService
	LogService         service.LogService
	PaymentService     service.PaymentService
	CategoryService    service.CategoryService
	TranslationService service.TranslationService
	EmailService       service.EmailService
	PushService        service.PushService

	// HTTP
	Handlers     *handler.Handlers
	AuditLogger  *middleware.AuditLogger
	LoginLimiter *middleware.LocalRateLimiter
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	App *config.Config
	DB  *database.PostgresDB
	// Redis, Producer, Gateway and Mailer are optional. When nil, NewContainer
	// connects them from App or falls back to local implementations.
	Redis    *redis.Client
	Producer kafka.Producer
	Gateway  gateway.RefundGateway
	Mailer   mailer.Mailer
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *ContainerConfig) (*Container, error) {
	if cfg == nil || cfg.App == nil || cfg.DB == nil {
		return nil, fmt.Errorf("container requires app config and database")
	}
	app := cfg.App

	c := &Container{
		DB:       cfg.DB,
		Redis:    cfg.Redis,
		Producer: cfg.Producer,
		Gateway:  cfg.Gateway,
		Mailer:   cfg.Mailer,
	}

	if err := c.initInfrastructure(ctx, app); err != nil {
		return nil, err
	}

	metrics, err := telemetry.NewAdminMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Metrics = metrics

	// Initialize repositories
	pool := c.DB.Pool()
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)
	c.PaymentRepo = repository.NewPostgresPaymentRepository(pool)
	c.CategoryRepo = repository.NewPostgresCategoryRepository(pool)
	c.TranslationRepo = repository.NewPostgresTranslationRepository(pool)
	c.EmailRepo = repository.NewPostgresEmailRepository(pool)
	c.PushRepo = repository.NewPostgresPushRepository(pool)
	c.ActionRepo = repository.NewPostgresAdminActionRepository(pool)
	c.StatsRepo = repository.NewPostgresStatsRepository(pool)

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, service.AuthConfig{
		Secret:   app.JWT.Secret,
		Issuer:   app.JWT.Issuer,
		TokenTTL: app.JWT.AccessTokenTTL,
	})
	c.DashboardService = service.NewDashboardService(c.StatsRepo, c.ActionRepo, c.Cache, app.Cache.StatsTTL, c.Metrics)
	c.EventService = service.NewEventService(c.EventRepo, c.Cache, c.Metrics)
	c.UserService = service.NewUserService(c.UserRepo, c.Metrics)
	c.BookingService = service.NewBookingService(c.BookingRepo)
	c.LogService = service.NewLogService(c.ActionRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.Gateway, c.Metrics)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.TranslationService = service.NewTranslationService(c.TranslationRepo, c.Cache, service.TranslationConfig{
		ReferenceLanguage: app.Translations.ReferenceLanguage,
		Languages:         app.Translations.Languages,
		CacheTTL:          app.Cache.TranslationTTL,
	})
	c.EmailService = service.NewEmailService(c.EmailRepo, c.Mailer, c.Cache, service.EmailConfig{
		FromEmail:       app.Email.DefaultFrom,
		FromName:        app.Email.DefaultName,
		DefaultLanguage: app.Email.DefaultLang,
		BulkDelay:       app.Email.BulkDelay,
		TemplateTTL:     app.Cache.TemplateTTL,
		BulkBudget:      bulkBudget(app.Server.WriteTimeout),
	}, c.Metrics)
	c.PushService = service.NewPushService(c.PushRepo, c.Notifier, app.Translations.ReferenceLanguage, c.Metrics)

	// Initialize HTTP middleware state
	c.AuditLogger = middleware.NewAuditLogger(middleware.DefaultAuditConfig(c.ActionRepo))
	c.LoginLimiter = middleware.NewLocalRateLimiter(middleware.LoginRateLimitConfig())

	// Initialize handlers
	checks := map[string]handler.Pinger{"postgres": c.DB}
	if c.Redis != nil {
		rdb := c.Redis
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	c.Handlers = &handler.Handlers{
		Health:      handler.NewHealthHandler(checks),
		Auth:        handler.NewAuthHandler(c.AuthService),
		Dashboard:   handler.NewDashboardHandler(c.DashboardService),
		Event:       handler.NewEventHandler(c.EventService),
		User:        handler.NewUserHandler(c.UserService),
		Booking:     handler.NewBookingHandler(c.BookingService, c.LogService),
		Payment:     handler.NewPaymentHandler(c.PaymentService),
		Category:    handler.NewCategoryHandler(c.CategoryService),
		Translation: handler.NewTranslationHandler(c.TranslationService, app.Translations.MaxUploadBytes),
		Email:       handler.NewEmailHandler(c.EmailService),
		Push:        handler.NewPushHandler(c.PushService),
	}

	return c, nil
}

// initInfrastructure connects optional backends. Outside production a backend
// that is disabled or unreachable is replaced by its local fallback.
func (c *Container) initInfrastructure(ctx context.Context, app *config.Config) error {
	if c.Redis == nil && app.Redis.Enabled {
		rdb, err := redis.NewClient(ctx, app.Redis)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			c.Redis = rdb
		}
	}
	if c.Redis != nil {
		c.Cache = c.Redis
	} else {
		c.Cache = cache.Noop{}
	}

	if c.Producer == nil && app.Kafka.Enabled {
		producer, err := kafka.NewProducer(ctx, app.Kafka)
		if err != nil {
			logger.Warn("kafka unavailable, push jobs will only be logged", zap.Error(err))
		} else {
			c.Producer = producer
		}
	}
	if c.Producer != nil {
		publisher, err := notifier.NewKafkaPublisher(c.Producer, app.Push.Topic)
		if err != nil {
			logger.Warn("push publisher misconfigured, push jobs will only be logged", zap.Error(err))
			c.Notifier = notifier.NewLogPublisher()
		} else {
			c.Notifier = publisher
		}
	} else {
		c.Notifier = notifier.NewLogPublisher()
	}

	if c.Gateway == nil {
		gw, err := gateway.NewStripeGateway(&gateway.GatewayConfig{
			SecretKey:   app.Stripe.SecretKey,
			Environment: stripeEnvironment(app),
		})
		if err != nil {
			if app.IsProduction() {
				return fmt.Errorf("refund gateway: %w", err)
			}
			logger.Warn("stripe not configured, refunds use the mock gateway", zap.Error(err))
			c.Gateway = gateway.NewMockGateway()
		} else {
			c.Gateway = gw
		}
	}

	if c.Mailer == nil {
		m, err := mailer.NewSendGridMailer(app.Email.SendGridAPIKey)
		if err != nil {
			logger.Warn("sendgrid not configured, emails are logged only", zap.Error(err))
			c.Mailer = mailer.NewLogMailer()
		} else {
			c.Mailer = m
		}
	}

	return nil
}

func stripeEnvironment(app *config.Config) string {
	if app.IsProduction() {
		return "live"
	}
	return "test"
}

// Close releases resources owned by the container
func (c *Container) Close() {
	if c.LoginLimiter != nil {
		c.LoginLimiter.Stop()
		allowed, rejected := c.LoginLimiter.GetStats()
		logger.Info("login rate limiter stopped",
			zap.Uint64("allowed", allowed),
			zap.Uint64("rejected", rejected),
		)
	}
	if c.AuditLogger != nil {
		if err := c.AuditLogger.Close(); err != nil {
			logger.Error("failed to flush audit log", zap.Error(err))
		}
	}
	if c.Producer != nil {
		c.Producer.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", zap.Error(err))
		}
	}
}

// bulkBudget leaves a fifth of the write timeout for template lookup and
// writing the response
func bulkBudget(writeTimeout time.Duration) time.Duration {
	return writeTimeout * 4 / 5
}
