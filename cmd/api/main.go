package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/api/middleware"
	"github.com/feral-file/give-gateway/internal/api/rest"
	"github.com/feral-file/give-gateway/internal/api/server"
	"github.com/feral-file/give-gateway/internal/commerce"
	"github.com/feral-file/give-gateway/internal/config"
	"github.com/feral-file/give-gateway/internal/formhash"
	"github.com/feral-file/give-gateway/internal/logger"
	"github.com/feral-file/give-gateway/internal/notification"
	"github.com/feral-file/give-gateway/internal/providers/paypal"
	"github.com/feral-file/give-gateway/internal/providers/stripe"
	"github.com/feral-file/give-gateway/internal/ratelimit"
	"github.com/feral-file/give-gateway/internal/scheduler"
	"github.com/feral-file/give-gateway/internal/settings"
	"github.com/feral-file/give-gateway/internal/store"
	"github.com/feral-file/give-gateway/internal/webhook"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "give-gateway-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting give gateway API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if cfg.Database.ReadHost != "" {
		if err := store.RegisterReadReplica(db, cfg.Database.ReadDSN()); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("host", cfg.Database.ReadHost))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(ctx, db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Settings store, optionally behind the redis cache
	dataStore := store.NewPGStore(db)
	var distributedLimiter adapter.RedisRateLimiter
	if cfg.Redis.Addr != "" {
		redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
		if err := redisClient.Ping(ctx); err != nil {
			logger.FatalCtx(ctx, "Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		dataStore = settings.NewCachedStore(dataStore, redisClient, cfg.Redis.TTL)
		distributedLimiter = redisClient.NewRateLimiter()
		logger.InfoCtx(ctx, "Settings cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}
	options := settings.NewOptions(dataStore)

	// Initialize adapters
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout)

	// Background jobs
	jobs := scheduler.New(clock)
	if err := jobs.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start scheduler", zap.Error(err))
	}

	// PayPal Commerce
	paypalClient := paypal.NewClient(httpClient, cfg.PayPal.APIURL, cfg.PayPal.SandboxAPIURL, cfg.PayPal.ConnectURL, cfg.PayPal.Mode,
		paypal.WithExchangeClient(adapter.NewHTTPClient(cfg.HTTP.Timeout, adapter.WithoutRetry())))
	commerceRouter := commerce.NewRouter(paypalClient, options, jobs, commerce.Config{
		Mode:        cfg.PayPal.Mode,
		AdminURL:    cfg.Site.AdminURL,
		BaseCountry: cfg.Site.BaseCountry,
		Currency:    cfg.Site.Currency,
	})
	if err := commerceRouter.ResumeTokenRefresh(ctx); err != nil {
		logger.WarnCtx(ctx, "Failed to resume PayPal token refresh", zap.Error(err))
	}

	// Stripe webhooks
	stripeClient := stripe.NewClient(httpClient, cfg.Stripe.APIURL, cfg.Stripe.SecretKey)
	registrar, err := webhook.NewRegistrar(stripeClient, options, cfg.Site.URL, cfg.Stripe.Mode, cfg.Stripe.Connected)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create Stripe webhook registrar", zap.Error(err))
	}
	if cfg.Stripe.SecretKey == "" {
		logger.WarnCtx(ctx, "Stripe secret key not configured, webhook registration will fail")
	}
	logger.InfoCtx(ctx, "Stripe webhook listener",
		zap.String("url", registrar.URL()),
		zap.String("mode", registrar.Mode()))

	// Email notifications
	notifications, err := notification.DefaultRegistry()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build notification registry", zap.Error(err))
	}

	hasher := formhash.New(cfg.FormHash.Secret, cfg.FormHash.Lifetime, clock)

	var limiter ratelimit.Limiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = ratelimit.New(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		}, distributedLimiter, clock)
		logger.InfoCtx(ctx, "Checkout rate limit enabled",
			zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			zap.Bool("distributed", distributedLimiter != nil),
		)
	}

	handler := rest.NewHandler(cfg.Debug, rest.Dependencies{
		Commerce:      commerceRouter,
		Registrar:     registrar,
		Listener:      webhook.NewListener(options, cfg.Stripe.Mode, clock),
		Notifications: notifications,
		Accessor:      notification.NewAccessor(options),
		FormHash:      hasher,
	})

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		RateLimiter: limiter,
	}, handler, hasher)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", jobs.Name()))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
