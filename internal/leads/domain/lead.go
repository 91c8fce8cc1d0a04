// Package domain holds the lead aggregate stored by the capture pipeline.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead is one captured submission, ready for the dashboard pipeline.
type Lead struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Company     string         `json:"company,omitempty"`
	Source      string         `json:"source"`
	Status      string         `json:"status"`
	Stage       string         `json:"stage,omitempty"`
	Tags        []string       `json:"tags"`
	LeadScore   int            `json:"leadScore"`
	Answers     map[string]any `json:"answers"`
	Metadata    Metadata       `json:"metadata"`
	IsDuplicate bool           `json:"isDuplicate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Metadata is the capture context snapshot stored alongside a lead. It is
// persisted as JSONB and treated as opaque by the dashboard list views.
type Metadata struct {
	FormID         string    `json:"formId"`
	FormName       string    `json:"formName"`
	Timestamp      time.Time `json:"timestamp"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	UTMSource      string    `json:"utm_source,omitempty"`
	UTMMedium      string    `json:"utm_medium,omitempty"`
	UTMCampaign    string    `json:"utm_campaign,omitempty"`
	UTMContent     string    `json:"utm_content,omitempty"`
	UTMTerm        string    `json:"utm_term,omitempty"`
	Referrer       string    `json:"referrer,omitempty"`
	PageURL        string    `json:"pageUrl,omitempty"`
	Device         string    `json:"device,omitempty"`
	Domain         string    `json:"domain,omitempty"`
	IsEmbedded     bool      `json:"isEmbedded,omitempty"`
	SubmissionType string    `json:"submissionType,omitempty"`
	CompletionSecs int64     `json:"completionSecs,omitempty"`
	IsDuplicate    bool      `json:"isDuplicate"`
}
