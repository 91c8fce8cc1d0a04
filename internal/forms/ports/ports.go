// Package ports defines the interfaces the form engine requires from
// external collaborators: the lead store it hands finished records to and
// the IP lookup service used for submission telemetry.
package ports

import (
	"context"
	"time"

	"leadcapture_backend/internal/forms/domain"
)

// LeadMetadata is the telemetry block recorded with a captured lead.
type LeadMetadata struct {
	domain.SubmissionContext
	FormID         string    `json:"formId"`
	FormName       string    `json:"formName"`
	Timestamp      time.Time `json:"timestamp"`
	IPAddress      string    `json:"ipAddress"`
	CompletionSecs int64     `json:"completionTime"`
}

// LeadRecord is the fully assembled lead handed to the lead store. It is
// either complete and persisted, or not produced at all; the pipeline
// never hands over partial records.
type LeadRecord struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Source    string
	Status    domain.LeadStatus
	Stage     string
	Tags      []string
	LeadScore int
	Answers   map[string]any
	Metadata  LeadMetadata
}

// LeadStore persists captured leads. Fire-and-forget from the pipeline's
// perspective: once AddLead returns nil the record's ownership has
// transferred to the store.
type LeadStore interface {
	AddLead(ctx context.Context, record LeadRecord) error
}

// IPLookup resolves the submitting client's public IP address.
// Implementations must degrade to "unknown" instead of failing; a broken
// lookup never fails a submission.
type IPLookup interface {
	Lookup(ctx context.Context) string
}
