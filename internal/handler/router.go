package handler

import (
	"fmt"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handlers groups every HTTP handler of the admin service
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Dashboard   *DashboardHandler
	Event       *EventHandler
	User        *UserHandler
	Booking     *BookingHandler
	Payment     *PaymentHandler
	Category    *CategoryHandler
	Translation *TranslationHandler
	Email       *EmailHandler
	Push        *PushHandler
}

// RouterConfig holds the middleware the routes are mounted behind
type RouterConfig struct {
	ServiceName  string
	Logger       *logger.Logger
	CORS         middleware.CORSConfig
	JWT          *middleware.JWTConfig
	Audit        *middleware.AuditLogger
	LoginLimiter *middleware.LocalRateLimiter
	// TrustedProxies lists the proxy addresses or CIDRs allowed to set
	// X-Forwarded-For. Empty trusts none, so the client IP is the peer address.
	TrustedProxies []string
}

// NewRouter builds the gin engine with global middleware and every route
func NewRouter(h *Handlers, cfg RouterConfig) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Get()
	}

	router := gin.New()
	var proxies []string
	if len(cfg.TrustedProxies) > 0 {
		proxies = cfg.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.CORS(cfg.CORS))

	RegisterRoutes(router, h, cfg)
	return router, nil
}

// RegisterRoutes mounts every admin route on router
func RegisterRoutes(router gin.IRouter, h *Handlers, cfg RouterConfig) {
	router.GET("/health", h.Health.Health)
	router.GET("/ready", h.Health.Ready)

	login := router.Group("/auth")
	if cfg.LoginLimiter != nil {
		login.Use(middleware.RateLimitByIP(cfg.LoginLimiter))
	}
	login.POST("/login", h.Auth.Login)

	jwt := middleware.JWTMiddleware(cfg.JWT)
	router.GET("/user/profile", jwt, h.Auth.Profile)

	api := router.Group("/api")
	api.Use(jwt, middleware.RequireAdminAccess())
	if cfg.Audit != nil {
		api.Use(middleware.AuditMiddleware(cfg.Audit))
	}

	admin := api.Group("/admin")
	{
		admin.GET("/profile", h.Auth.Profile)
		admin.GET("/dashboard/stats", h.Dashboard.Stats)

		events := admin.Group("/events")
		events.GET("", h.Event.List)
		events.GET("/:id", h.Event.GetByID)
		events.PATCH("/:id/status", h.Event.UpdateStatus)
		events.PUT("/:id/pricing", h.Event.UpdatePricing)
		events.GET("/:id/pricing/quote", h.Event.Quote)
		events.DELETE("/:id", h.Event.Delete)

		users := admin.Group("/users")
		users.GET("", h.User.List)
		users.GET("/:id", h.User.GetByID)
		users.PATCH("/:id/role", h.User.UpdateRole)
		users.PATCH("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)

		admin.GET("/bookings", h.Booking.List)
		admin.GET("/logs", h.Booking.Logs)

		categories := admin.Group("/categories")
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.GetByID)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)

		translations := admin.Group("/translations")
		translations.GET("/languages", h.Translation.Languages)
		translations.GET("/stats", h.Translation.Stats)
		translations.POST("/upload", h.Translation.Upload)
		translations.GET("/:lang/namespaces", h.Translation.Namespaces)
		translations.GET("/:lang/:ns", h.Translation.Get)
		translations.PUT("/:lang/:ns", h.Translation.Replace)
		translations.POST("/:lang/:ns", h.Translation.Create)
		translations.DELETE("/:lang/:ns", h.Translation.Delete)
		translations.GET("/:lang/:ns/export", h.Translation.Export)
		translations.GET("/:lang/:ns/validate", h.Translation.Validate)

		pushTemplates := admin.Group("/push-templates")
		pushTemplates.GET("", h.Push.ListTemplates)
		pushTemplates.GET("/:id", h.Push.GetTemplate)
		pushTemplates.POST("", h.Push.CreateTemplate)
		pushTemplates.PUT("/:id", h.Push.UpdateTemplate)
		pushTemplates.DELETE("/:id", h.Push.DeleteTemplate)

		push := admin.Group("/push-notifications")
		push.GET("/settings", h.Push.Settings)
		push.PUT("/settings", h.Push.UpdateSettings)
		push.GET("/logs", h.Push.Logs)
		push.POST("/test", h.Push.SendTest)
	}

	payments := api.Group("/payments/admin")
	{
		payments.GET("/stats", h.Payment.Stats)
		payments.GET("/transactions", h.Payment.Transactions)
		payments.GET("/revenue", h.Payment.Revenue)
		payments.POST("/refund", h.Payment.Refund)
		payments.GET("/disputes", h.Payment.Disputes)
	}

	emails := api.Group("/emails")
	{
		emails.GET("/templates", h.Email.ListTemplates)
		emails.GET("/templates/:id", h.Email.GetTemplate)
		emails.POST("/templates", h.Email.CreateTemplate)
		emails.PUT("/templates/:id", h.Email.UpdateTemplate)
		emails.DELETE("/templates/:id", h.Email.DeleteTemplate)
		emails.POST("/templates/:id/test", h.Email.SendTest)
		emails.GET("/logs", h.Email.Logs)
		emails.GET("/settings", h.Email.Settings)
		emails.PUT("/settings/:key", h.Email.UpdateSetting)
		emails.POST("/bulk-send", h.Email.BulkSend)
	}
}
