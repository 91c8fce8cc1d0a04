// Package notification turns LeadCaptured events into queued
// notification emails for form owners.
package notification

import (
	"context"

	"leadcapture_backend/internal/events"
	"leadcapture_backend/internal/scheduler"
	"leadcapture_backend/platform/logger"
)

// RecipientResolver looks up who should be notified for a form. An empty
// recipient means notifications are off for that form.
type RecipientResolver interface {
	NotificationRecipient(ctx context.Context, formID string) (string, error)
}

// Dispatcher subscribes to lead events and enqueues notification tasks.
type Dispatcher struct {
	resolver RecipientResolver
	enqueuer scheduler.NotificationEnqueuer
	log      *logger.Logger
}

func NewDispatcher(resolver RecipientResolver, enqueuer scheduler.NotificationEnqueuer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{resolver: resolver, enqueuer: enqueuer, log: log}
}

// Subscribe registers the dispatcher on the event bus.
func (d *Dispatcher) Subscribe(bus events.Bus) {
	bus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(d.handleLeadCaptured))
}

func (d *Dispatcher) handleLeadCaptured(ctx context.Context, event events.Event) error {
	captured, ok := event.(events.LeadCaptured)
	if !ok {
		return nil
	}

	recipient, err := d.resolver.NotificationRecipient(ctx, captured.FormID)
	if err != nil {
		d.log.Error("notification recipient lookup failed", "error", err, "formId", captured.FormID)
		return err
	}
	if recipient == "" {
		return nil
	}

	err = d.enqueuer.EnqueueLeadNotification(ctx, scheduler.LeadNotificationPayload{
		To:        recipient,
		FormName:  captured.FormName,
		LeadName:  captured.LeadName,
		LeadEmail: captured.LeadEmail,
		Source:    captured.Source,
		LeadScore: captured.LeadScore,
		Status:    captured.Status,
		Duplicate: captured.IsDuplicate,
	})
	if err != nil {
		d.log.Error("notification enqueue failed", "error", err, "formId", captured.FormID)
		return err
	}
	return nil
}
