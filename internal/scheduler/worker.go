package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"leadcapture_backend/internal/email"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/logger"
)

// Worker consumes queued tasks. It runs as its own process (cmd/worker)
// so slow SMTP servers never affect API latency.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskLeadNotification, w.handleLeadNotification)

	return w, nil
}

func (w *Worker) handleLeadNotification(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadNotificationPayload(task)
	if err != nil {
		// a payload that cannot be parsed will never succeed
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	err = w.sender.SendLeadNotification(ctx, payload.To, email.LeadNotificationData{
		FormName:  payload.FormName,
		LeadName:  payload.LeadName,
		LeadEmail: payload.LeadEmail,
		Source:    payload.Source,
		LeadScore: payload.LeadScore,
		Status:    payload.Status,
		Duplicate: payload.Duplicate,
	})
	if err != nil {
		w.log.Error("lead notification delivery failed", "error", err, "to", payload.To)
		return err
	}

	w.log.Info("lead notification delivered", "to", payload.To, "form", payload.FormName)
	return nil
}

// Run starts the worker and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
