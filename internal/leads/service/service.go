// Package service implements lead capture and dashboard queries.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leadcapture_backend/internal/events"
	"leadcapture_backend/internal/leads/domain"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/logger"
	"leadcapture_backend/platform/phone"
	"leadcapture_backend/platform/sanitize"
)

const msgLeadNotFound = "Lead not found"

// CaptureInput is a fully resolved submission handed over by the forms
// pipeline. All attribution, scoring and tagging already happened; this
// service owns persistence concerns only.
type CaptureInput struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Source    string
	Status    string
	Stage     string
	Tags      []string
	LeadScore int
	Answers   map[string]any
	Metadata  domain.Metadata
}

// Service captures and serves leads.
type Service struct {
	repo repository.LeadsRepository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.LeadsRepository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Capture sanitizes, dedupes and stores one lead, then publishes
// LeadCaptured. Duplicates are stored and flagged, never rejected; losing
// a lead is worse than listing it twice.
func (s *Service) Capture(ctx context.Context, input CaptureInput) (domain.Lead, error) {
	lead := domain.Lead{
		ID:        uuid.New(),
		Name:      sanitize.Text(input.Name),
		Email:     sanitize.Text(input.Email),
		Phone:     phone.NormalizeE164(input.Phone),
		Company:   sanitize.Text(input.Company),
		Source:    input.Source,
		Status:    input.Status,
		Stage:     input.Stage,
		Tags:      input.Tags,
		LeadScore: input.LeadScore,
		Answers:   sanitize.Answers(input.Answers),
		Metadata:  input.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	lead.UpdatedAt = lead.CreatedAt
	if lead.Tags == nil {
		lead.Tags = []string{}
	}

	if lead.Email != "" && lead.Metadata.FormID != "" {
		exists, err := s.repo.ExistsByEmailAndForm(ctx, lead.Email, lead.Metadata.FormID)
		if err != nil {
			// a failed duplicate check must not block capture
			s.log.WithFormID(lead.Metadata.FormID).DatabaseError("duplicate check", err)
		} else {
			lead.IsDuplicate = exists
			lead.Metadata.IsDuplicate = exists
		}
	}

	if err := s.repo.Insert(ctx, lead); err != nil {
		return domain.Lead{}, fmt.Errorf("store lead: %w", err)
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      lead.ID,
		FormID:      lead.Metadata.FormID,
		FormName:    lead.Metadata.FormName,
		LeadName:    lead.Name,
		LeadEmail:   lead.Email,
		Source:      lead.Source,
		LeadScore:   lead.LeadScore,
		Status:      lead.Status,
		IsDuplicate: lead.IsDuplicate,
	})

	return lead, nil
}

// GetLead returns one lead by ID.
func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return domain.Lead{}, apperr.NotFound(msgLeadNotFound)
		}
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, msgLeadNotFound, err)
	}
	return lead, nil
}

// ListLeads returns leads for the dashboard, newest first.
func (s *Service) ListLeads(ctx context.Context, filter repository.ListFilter) ([]domain.Lead, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to list leads", err)
	}
	return items, nil
}

// Scorer recomputes a lead score from its stored answers.
type Scorer interface {
	Score(answers map[string]any) int
	StatusFor(score int) string
}

// RescoreAll recomputes every lead's score with the given scorer and
// persists changed ones. Returns the number of updated leads.
func (s *Service) RescoreAll(ctx context.Context, scorer Scorer) (int, error) {
	updated := 0
	err := s.repo.IterateForRescore(ctx, func(lead domain.Lead) error {
		newScore := scorer.Score(lead.Answers)
		if newScore == lead.LeadScore {
			return nil
		}
		if err := s.repo.UpdateScore(ctx, lead.ID, newScore, scorer.StatusFor(newScore)); err != nil {
			return fmt.Errorf("rescore lead %s: %w", lead.ID, err)
		}
		s.bus.Publish(ctx, events.LeadRescored{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldScore:  lead.LeadScore,
			NewScore:  newScore,
		})
		updated++
		return nil
	})
	return updated, err
}
