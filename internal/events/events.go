// Package events defines the domain events that cross module boundaries.
// The bus infrastructure lives in platform/events; this package only
// names the events and their payloads.
package events

import (
	"github.com/google/uuid"

	"leadcapture_backend/platform/events"
)

// Re-exported so modules depend on one events package.
type (
	Event       = events.Event
	BaseEvent   = events.BaseEvent
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
)

// NewBaseEvent creates a base event stamped with the current time.
func NewBaseEvent() BaseEvent { return events.NewBaseEvent() }

// LeadCaptured is published after a form submission has been stored as a
// lead. Notification delivery subscribes to it.
type LeadCaptured struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	FormID      string    `json:"formId"`
	FormName    string    `json:"formName"`
	LeadName    string    `json:"leadName"`
	LeadEmail   string    `json:"leadEmail"`
	Source      string    `json:"source"`
	LeadScore   int       `json:"leadScore"`
	Status      string    `json:"status"`
	IsDuplicate bool      `json:"isDuplicate"`
}

func (e LeadCaptured) EventName() string { return "leads.lead.captured" }

// LeadRescored is published when a backfill recomputes a lead's score.
type LeadRescored struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

func (e LeadRescored) EventName() string { return "leads.lead.rescored" }
