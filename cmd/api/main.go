package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadcapture_backend/internal/adapters"
	"leadcapture_backend/internal/forms"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/http/router"
	"leadcapture_backend/internal/iplookup"
	"leadcapture_backend/internal/leads"
	"leadcapture_backend/internal/notification"
	"leadcapture_backend/internal/scheduler"
	"leadcapture_backend/internal/storage"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/db"
	"leadcapture_backend/platform/events"
	"leadcapture_backend/platform/logger"
	"leadcapture_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	// Object storage for file-type form fields. Optional: without it the
	// presign endpoint reports uploads as unavailable.
	var uploads storage.Uploads
	if cfg.IsStorageEnabled() {
		storageSvc, err := storage.New(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure upload bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure upload bucket exists", "error", err)
			panic("failed to ensure upload bucket exists: " + err.Error())
		}
		uploads = storageSvc
		log.Info("storage service initialized", "bucket", cfg.GetUploadBucket())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; file uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, eventBus, adapters.LeadScorerAdapter{}, log)

	leadStore := adapters.NewLeadStoreAdapter(leadsModule.Service())
	lookup := iplookup.New(cfg, log)
	formsModule := forms.NewModule(pool, leadStore, lookup, uploads, cfg, val, log)

	// Notification dispatch rides the event bus; without Redis the queue
	// is off and notifications are skipped.
	if cfg.GetRedisURL() != "" {
		taskClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize task client", "error", err)
			panic("failed to initialize task client: " + err.Error())
		}
		defer taskClient.Close()

		dispatcher := notification.NewDispatcher(formsModule, taskClient, log)
		dispatcher.Subscribe(eventBus)
		log.Info("notification dispatcher registered", "queue", cfg.GetAsynqQueueName())
	} else {
		log.Warn("REDIS_URL not configured; lead notifications disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			formsModule,
			leadsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
