package transport

import (
	"time"

	"leadcapture_backend/internal/forms/domain"
)

// ClientContext is the submission context block supplied by the hosting
// shell. The embedding flag and access path are explicit inputs; the
// server never infers them (an iframe check only exists in a browser).
type ClientContext struct {
	UTMSource   string     `json:"utm_source,omitempty" validate:"omitempty,max=200"`
	UTMMedium   string     `json:"utm_medium,omitempty" validate:"omitempty,max=200"`
	UTMCampaign string     `json:"utm_campaign,omitempty" validate:"omitempty,max=200"`
	UTMContent  string     `json:"utm_content,omitempty" validate:"omitempty,max=200"`
	UTMTerm     string     `json:"utm_term,omitempty" validate:"omitempty,max=200"`
	Referrer    string     `json:"referrer,omitempty" validate:"omitempty,max=2000"`
	PageURL     string     `json:"pageUrl,omitempty" validate:"omitempty,max=2000"`
	Device      string     `json:"device,omitempty" validate:"omitempty,oneof=mobile desktop"`
	IsEmbedded  bool       `json:"isEmbedded"`
	AccessPath  string     `json:"accessPath,omitempty" validate:"omitempty,oneof=hosted shared"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
}

// SubmissionRequest is the payload of the public submit endpoint.
type SubmissionRequest struct {
	Values  map[string]any `json:"values" validate:"required"`
	Context ClientContext  `json:"context"`
}

// SubmissionResponse describes the post-submission behavior the client
// should drive.
type SubmissionResponse struct {
	SuccessType string `json:"successType"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// ValidateStepRequest carries one step's values for server-side validation.
type ValidateStepRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

// PresignUploadRequest asks for an upload slot for a file-type field.
type PresignUploadRequest struct {
	FieldID  string `json:"fieldId" validate:"required,max=200"`
	FileName string `json:"fileName" validate:"required,max=500"`
	FileType string `json:"fileType" validate:"required,max=200"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0"`
}

// PresignUploadResponse returns the presigned PUT URL and the object key
// the client should submit as the field's value.
type PresignUploadResponse struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
	ExpiresIn int64  `json:"expiresIn"`
}

// FormSummary is the admin list representation of a form.
type FormSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	StepCount int       `json:"stepCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveFormRequest wraps a full definition for create/update. The definition
// is validated structurally before it is stored.
type SaveFormRequest struct {
	Definition domain.FormDefinition `json:"definition" validate:"required"`
}
