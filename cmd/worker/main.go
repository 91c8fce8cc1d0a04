package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadcapture_backend/internal/email"
	"leadcapture_backend/internal/scheduler"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/logger"
)

// The worker delivers queued lead notification emails. It shares the
// Redis queue with the API process and nothing else.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	if cfg.GetRedisURL() == "" {
		panic("REDIS_URL is required for the worker")
	}
	if !cfg.GetEmailEnabled() {
		panic("SMTP_HOST and EMAIL_FROM_ADDRESS are required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sender := email.NewSMTPSender(cfg)

	worker, err := scheduler.NewWorker(cfg, sender, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker starting", "queue", cfg.GetAsynqQueueName(), "concurrency", cfg.GetAsynqConcurrency())
	if err := worker.Run(ctx); err != nil {
		log.Error("worker stopped with error", "error", err)
		panic("worker stopped with error: " + err.Error())
	}
	log.Info("worker stopped")
}
