package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beout/beout-admin/internal/di"
	"github.com/beout/beout-admin/internal/handler"
	"github.com/beout/beout-admin/pkg/config"
	"github.com/beout/beout-admin/pkg/database"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/middleware"
	"github.com/beout/beout-admin/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an env file; defaults to ./.env when present")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadWithPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
		OutputPath:  "stdout",
	}); err != nil {
		_, _ = os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	log.Info("starting admin service",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	if err := telemetry.Init(ctx, telemetry.FromAppConfig(cfg)); err != nil {
		log.Fatal("failed to init telemetry", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, database.FromAppConfig(cfg.Database))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	container, err := di.NewContainer(ctx, &di.ContainerConfig{App: cfg, DB: db})
	if err != nil {
		log.Fatal("failed to build container", zap.Error(err))
	}
	defer container.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handler.NewRouter(container.Handlers, handler.RouterConfig{
		ServiceName: cfg.App.Name,
		Logger:      log,
		CORS:        middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins...),
		JWT: &middleware.JWTConfig{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
		},
		Audit:          container.AuditLogger,
		LoginLimiter:   container.LoginLimiter,
		TrustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		log.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("admin service listening", zap.String("addr", server.Addr))
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Error("telemetry shutdown error", zap.Error(err))
	}
	log.Info("admin service stopped")
}
