package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"leadcapture_backend/internal/events"
	"leadcapture_backend/internal/scheduler"
	platformevents "leadcapture_backend/platform/events"
	"leadcapture_backend/platform/logger"
)

type fakeResolver struct {
	recipient string
	err       error
}

func (r fakeResolver) NotificationRecipient(context.Context, string) (string, error) {
	return r.recipient, r.err
}

type fakeEnqueuer struct {
	payloads []scheduler.LeadNotificationPayload
	err      error
}

func (e *fakeEnqueuer) EnqueueLeadNotification(_ context.Context, payload scheduler.LeadNotificationPayload) error {
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, payload)
	return nil
}

func capturedEvent() events.LeadCaptured {
	return events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		FormID:    "contact",
		FormName:  "Contact Us",
		LeadName:  "Ada Lovelace",
		LeadEmail: "ada@example.com",
		Source:    "Website",
		LeadScore: 55,
		Status:    "qualified",
	}
}

func TestDispatcher_EnqueuesOnLeadCaptured(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewDispatcher(fakeResolver{recipient: "owner@example.com"}, enqueuer, logger.New("test"))

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	dispatcher.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), capturedEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("enqueued %d payloads", len(enqueuer.payloads))
	}
	payload := enqueuer.payloads[0]
	if payload.To != "owner@example.com" || payload.FormName != "Contact Us" || payload.LeadScore != 55 {
		t.Fatalf("payload: %+v", payload)
	}
}

func TestDispatcher_SkipsFormsWithoutRecipient(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewDispatcher(fakeResolver{recipient: ""}, enqueuer, logger.New("test"))

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	dispatcher.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), capturedEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatal("nothing may be enqueued without a recipient")
	}
}

func TestDispatcher_ResolverFailureSurfaces(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	dispatcher := NewDispatcher(fakeResolver{err: errors.New("down")}, enqueuer, logger.New("test"))

	bus := platformevents.NewInMemoryBus(logger.New("test"))
	dispatcher.Subscribe(bus)

	if err := bus.PublishSync(context.Background(), capturedEvent()); err == nil {
		t.Fatal("expected error")
	}
	if len(enqueuer.payloads) != 0 {
		t.Fatal("nothing may be enqueued when the resolver fails")
	}
}
