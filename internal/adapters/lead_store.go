// Package adapters wires bounded contexts together without letting them
// import each other's services directly.
package adapters

import (
	"context"

	"leadcapture_backend/internal/forms/ports"
	leadsdomain "leadcapture_backend/internal/leads/domain"
	leadssvc "leadcapture_backend/internal/leads/service"
)

// LeadStoreAdapter implements forms ports.LeadStore on top of the leads
// service.
type LeadStoreAdapter struct {
	leads *leadssvc.Service
}

func NewLeadStoreAdapter(leads *leadssvc.Service) *LeadStoreAdapter {
	return &LeadStoreAdapter{leads: leads}
}

// AddLead converts the pipeline's finished record into a capture request.
func (a *LeadStoreAdapter) AddLead(ctx context.Context, record ports.LeadRecord) error {
	_, err := a.leads.Capture(ctx, leadssvc.CaptureInput{
		Name:      record.Name,
		Email:     record.Email,
		Phone:     record.Phone,
		Company:   record.Company,
		Source:    record.Source,
		Status:    string(record.Status),
		Stage:     record.Stage,
		Tags:      record.Tags,
		LeadScore: record.LeadScore,
		Answers:   record.Answers,
		Metadata: leadsdomain.Metadata{
			FormID:         record.Metadata.FormID,
			FormName:       record.Metadata.FormName,
			Timestamp:      record.Metadata.Timestamp,
			IPAddress:      record.Metadata.IPAddress,
			UTMSource:      record.Metadata.UTMSource,
			UTMMedium:      record.Metadata.UTMMedium,
			UTMCampaign:    record.Metadata.UTMCampaign,
			UTMContent:     record.Metadata.UTMContent,
			UTMTerm:        record.Metadata.UTMTerm,
			Referrer:       record.Metadata.Referrer,
			PageURL:        record.Metadata.PageURL,
			Device:         string(record.Metadata.Device),
			Domain:         record.Metadata.Domain,
			IsEmbedded:     record.Metadata.IsEmbedded,
			SubmissionType: string(record.Metadata.SubmissionType),
			CompletionSecs: record.Metadata.CompletionSecs,
		},
	})
	return err
}

var _ ports.LeadStore = (*LeadStoreAdapter)(nil)
