// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payquick/internal/config"
	"payquick/internal/handlers"
	"payquick/internal/logging"
	"payquick/internal/repositories/securestore"
	"payquick/internal/routes"
	"payquick/internal/security"
	"payquick/internal/services/auth"
	"payquick/internal/services/cart"
	"payquick/internal/services/checkout"
	creditcard "payquick/internal/services/credit-card"
	"payquick/internal/services/payment"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Opens the secure storage backend
// - Sets up dependency injection
// - Configures routes
// - Starts the HTTP server
func main() {
	// Load environment variables
	config.LoadEnv()
	settings := config.Load()

	level := slog.LevelDebug
	if settings.Production {
		level = slog.LevelInfo
	}
	logger := logging.New(settings.Production, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, health, closeBackend, err := openBackend(ctx, settings, logger)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", settings.Storage, err)
	}
	defer closeBackend()

	cipher, err := security.NewCipher(settings.AppSecret)
	if err != nil {
		log.Fatalf("Failed to set up storage encryption: %v", err)
	}
	store := securestore.New(backend, cipher, settings.StoragePrefix, logger)

	gateway := newGateway(settings, logger)

	sessions := checkout.NewManager(store, checkout.Dependencies{
		Validator: creditcard.NewValidator(settings.LuhnCheck),
		Gateway:   gateway,
		TaxRate:   cart.ParseTaxRate(settings.TaxRate),
		Currency:  settings.Currency,
		Log:       logger,
	}, settings.SessionTTL)
	go sessions.RunJanitor(ctx, time.Minute)

	authService, err := auth.NewService(settings.JWTSecret, settings.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to set up session tokens: %v", err)
	}

	app := routes.NewApp(routes.AppConfig{
		AllowOrigins:      "http://localhost:5173",
		SessionsPerMinute: 5,
		AccessLog:         !settings.Production,
	}, routes.Dependencies{
		Auth:     authService,
		Sessions: sessions,
		Gateway:  gateway,
		Health:   health,
		Log:      logger,
	})

	go func() {
		<-ctx.Done()
		logger.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error(context.Background(), "shutdown failed", "error", err)
		}
	}()

	logger.Info(ctx, "server starting", "port", settings.Port, "storage", settings.Storage, "gateway", settings.Gateway)
	if err := app.Listen(":" + settings.Port); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
	}
}

// openBackend connects the configured storage and returns its readiness
// probes and a close func.
func openBackend(ctx context.Context, s config.Settings, logger logging.Logger) (securestore.Backend, map[string]handlers.HealthCheck, func(), error) {
	switch s.Storage {
	case config.StorageMemory:
		return securestore.NewMemoryBackend(), nil, func() {}, nil

	case config.StorageRedis:
		client := securestore.NewRedisClient(&securestore.RedisConfig{
			Host:     s.Redis.Host,
			Port:     s.Redis.Port,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
		})
		backend := securestore.NewRedisBackend(client, s.SessionTTL)
		if err := backend.HealthCheck(ctx); err != nil {
			_ = backend.Close()
			return nil, nil, nil, err
		}
		logger.Info(ctx, "connected to redis", "addr", client.Options().Addr)

		health := map[string]handlers.HealthCheck{
			"redis": backend.HealthCheck,
		}
		closeFn := func() {
			if err := backend.Close(); err != nil {
				logger.Warn(context.Background(), "failed to close redis connection", "error", err)
			}
		}
		return backend, health, closeFn, nil

	case config.StoragePostgres:
		db, err := securestore.OpenPostgres(securestore.PostgresConfig{
			Host:     s.Postgres.Host,
			Port:     s.Postgres.Port,
			User:     s.Postgres.User,
			Password: s.Postgres.Password,
			Name:     s.Postgres.Name,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}

		backend := securestore.NewGormBackend(db)
		if err := backend.Migrate(); err != nil {
			return nil, nil, nil, err
		}
		logger.Info(ctx, "connected to postgres", "host", s.Postgres.Host, "database", s.Postgres.Name)

		health := map[string]handlers.HealthCheck{
			"database": sqlDB.PingContext,
		}
		closeFn := func() {
			if err := sqlDB.Close(); err != nil {
				logger.Warn(context.Background(), "failed to close database connection", "error", err)
			}
		}
		return backend, health, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q", s.Storage)
	}
}

func newGateway(s config.Settings, logger logging.Logger) payment.Gateway {
	if s.Gateway == config.GatewayStripe {
		if s.StripeSecretKey == "" {
			log.Fatal("STRIPE_SECRET_KEY is required for the stripe gateway")
		}
		return payment.NewStripeGateway(s.StripeSecretKey, nil, creditcard.NewTestTokenizer(), logger)
	}

	cfg := payment.DefaultMockConfig()
	cfg.ProcessDelay = s.GatewayDelay
	return payment.NewMockGateway(cfg, payment.RandomOutcome{}, logger)
}
