// Package service orchestrates the form engine's submission pipeline:
// validate, resolve attribution, score, tag, assemble the lead record and
// hand it to the lead store.
package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"leadcapture_backend/internal/forms/domain"
	"leadcapture_backend/internal/forms/ports"
	"leadcapture_backend/internal/forms/repository"
	"leadcapture_backend/internal/forms/transport"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	msgFormNotFound     = "Form not found"
	msgInvalidStep      = "Invalid step"
	msgFieldErrors      = "Please correct the highlighted fields"
	msgSubmissionFailed = "Submission failed. Please try again."

	defaultSuccessMessage = "Thank you! Your submission has been received."
)

// standardFields are folded into the lead's dedicated columns rather than
// the answer map.
var standardFields = map[string]struct{}{
	"name":    {},
	"email":   {},
	"phone":   {},
	"company": {},
}

type Service struct {
	repo   repository.FormsRepository
	store  ports.LeadStore
	lookup ports.IPLookup
	log    *logger.Logger
}

func New(repo repository.FormsRepository, store ports.LeadStore, lookup ports.IPLookup, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, lookup: lookup, log: log}
}

// GetDefinition loads a form definition for rendering.
func (s *Service) GetDefinition(ctx context.Context, id string) (domain.FormDefinition, error) {
	def, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.FormDefinition{}, apperr.NotFound(msgFormNotFound)
		}
		return domain.FormDefinition{}, apperr.Wrap(apperr.KindInternal, msgFormNotFound, err)
	}
	return def, nil
}

// ValidateStep validates one step's values server-side. Field errors are
// part of the result, not an error return; only a missing form or step
// index is an error.
func (s *Service) ValidateStep(ctx context.Context, formID string, stepIndex int, values map[string]any) (domain.StepValidation, error) {
	def, err := s.GetDefinition(ctx, formID)
	if err != nil {
		return domain.StepValidation{}, err
	}
	if stepIndex < 0 || stepIndex > def.TerminalIndex() {
		return domain.StepValidation{}, apperr.BadRequest(msgInvalidStep)
	}
	return domain.ValidateStep(def.Steps[stepIndex], values), nil
}

// Submit runs the full submission pipeline for a form. The lead is either
// fully assembled and handed to the store, or not produced at all; any
// failure after validation surfaces as a single generic, retryable error.
func (s *Service) Submit(ctx context.Context, formID string, req transport.SubmissionRequest) (transport.SubmissionResponse, error) {
	def, err := s.GetDefinition(ctx, formID)
	if err != nil {
		return transport.SubmissionResponse{}, err
	}

	// 1. Validate. The stateless submit receives the whole answer map, so
	// every step is checked; this subsumes the client's terminal-step gate.
	fieldErrors := make(map[string]string)
	for _, step := range def.Steps {
		result := domain.ValidateStep(step, req.Values)
		for fieldID, message := range result.Errors {
			fieldErrors[fieldID] = message
		}
	}
	if len(fieldErrors) > 0 {
		return transport.SubmissionResponse{}, apperr.Validation(msgFieldErrors).WithDetails(fieldErrors)
	}

	// 2. Best-effort IP lookup; degrades to "unknown" inside the client.
	ipAddress := s.lookup.Lookup(ctx)

	// 3. Attribution.
	raw := domain.RawContext{
		UTMSource:  req.Context.UTMSource,
		IsEmbedded: req.Context.IsEmbedded,
		Hostname:   pageHostname(req.Context.PageURL),
		Referrer:   req.Context.Referrer,
		SharedLink: req.Context.AccessPath == "shared",
	}
	att := domain.ResolveAttribution(def.Settings.SourceConfig, raw)
	sctx := domain.SubmissionContext{
		UTMSource:      req.Context.UTMSource,
		UTMMedium:      req.Context.UTMMedium,
		UTMCampaign:    req.Context.UTMCampaign,
		UTMContent:     req.Context.UTMContent,
		UTMTerm:        req.Context.UTMTerm,
		Referrer:       req.Context.Referrer,
		PageURL:        req.Context.PageURL,
		Device:         deviceOf(req.Context.Device),
		Domain:         att.ResolvedDomain,
		IsEmbedded:     req.Context.IsEmbedded,
		SubmissionType: att.SubmissionType,
	}

	// 4. Score, then tags; the Auto-Qualified tag depends on the score.
	leadScore := 0
	if def.Settings.AutoScore {
		leadScore = domain.ScoreAnswers(req.Values)
	}
	tags := domain.ComputeTags(def.Settings, sctx, req.Values, def.Name, leadScore)

	// 5. Assemble the lead record.
	record := ports.LeadRecord{
		Name:      stringValue(req.Values["name"]),
		Email:     stringValue(req.Values["email"]),
		Phone:     stringValue(req.Values["phone"]),
		Company:   stringValue(req.Values["company"]),
		Source:    att.Source,
		Status:    domain.StatusForScore(leadScore),
		Stage:     def.Settings.PipelineStage,
		Tags:      tags,
		LeadScore: leadScore,
		Answers:   extraAnswers(def, req.Values),
		Metadata:  s.buildMetadata(def, sctx, ipAddress, req.Context.StartedAt),
	}

	// 6. Hand off to the lead store.
	log := s.log.WithContext(ctx)
	if err := s.store.AddLead(ctx, record); err != nil {
		log.SubmissionFailed(def.ID, err)
		return transport.SubmissionResponse{}, apperr.Wrap(apperr.KindInternal, msgSubmissionFailed, err)
	}

	log.SubmissionEvent(def.ID, att.Source, string(att.SubmissionType), leadScore)

	// 7. Post-submission behavior.
	return successResponse(def.Settings), nil
}

// CreateForm stores a new definition; an empty ID gets a generated one.
func (s *Service) CreateForm(ctx context.Context, def domain.FormDefinition) (domain.FormDefinition, error) {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if err := def.Validate(); err != nil {
		return domain.FormDefinition{}, apperr.Validation(err.Error())
	}
	if err := s.repo.Create(ctx, def); err != nil {
		return domain.FormDefinition{}, apperr.Wrap(apperr.KindInternal, "Failed to save form", err)
	}
	return def, nil
}

// UpdateForm replaces an existing definition.
func (s *Service) UpdateForm(ctx context.Context, def domain.FormDefinition) error {
	if err := def.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	if err := s.repo.Update(ctx, def); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgFormNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "Failed to save form", err)
	}
	return nil
}

// ListForms returns summaries of every stored form.
func (s *Service) ListForms(ctx context.Context) ([]transport.FormSummary, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to list forms", err)
	}

	items := make([]transport.FormSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, transport.FormSummary{
			ID:        row.ID,
			Name:      row.Name,
			Type:      string(row.Definition.Type),
			StepCount: len(row.Definition.Steps),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return items, nil
}

// DeleteForm removes a stored form.
func (s *Service) DeleteForm(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgFormNotFound)
		}
		return apperr.Wrap(apperr.KindInternal, "Failed to delete form", err)
	}
	return nil
}

func (s *Service) buildMetadata(def domain.FormDefinition, sctx domain.SubmissionContext, ipAddress string, startedAt *time.Time) ports.LeadMetadata {
	meta := ports.LeadMetadata{
		FormID:    def.ID,
		FormName:  def.Name,
		Timestamp: time.Now().UTC(),
	}

	if !def.Settings.CaptureMetadata {
		return meta
	}

	meta.SubmissionContext = sctx
	meta.IPAddress = ipAddress
	if def.Settings.GDPRCompliant {
		meta.IPAddress = "masked"
	}
	if startedAt != nil {
		if elapsed := meta.Timestamp.Sub(*startedAt); elapsed > 0 {
			meta.CompletionSecs = int64(elapsed.Seconds())
		}
	}
	return meta
}

// extraAnswers folds every non-hidden, non-standard field value into the
// lead's answer map verbatim.
func extraAnswers(def domain.FormDefinition, values map[string]any) map[string]any {
	answers := make(map[string]any)
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			if _, standard := standardFields[field.ID]; standard {
				continue
			}
			if def.IsHidden(field.ID) {
				continue
			}
			if value, ok := values[field.ID]; ok {
				answers[field.ID] = value
			}
		}
	}
	return answers
}

func successResponse(settings domain.SubmissionSettings) transport.SubmissionResponse {
	switch settings.SuccessType {
	case domain.SuccessTypeRedirect:
		if settings.RedirectURL != "" {
			return transport.SubmissionResponse{
				SuccessType: string(domain.SuccessTypeRedirect),
				RedirectURL: settings.RedirectURL,
			}
		}
	case domain.SuccessTypeCustom:
		if settings.CustomMessage != "" {
			return transport.SubmissionResponse{
				SuccessType: string(domain.SuccessTypeCustom),
				Message:     settings.CustomMessage,
			}
		}
	}

	message := settings.SuccessMessage
	if message == "" {
		message = defaultSuccessMessage
	}
	return transport.SubmissionResponse{
		SuccessType: string(domain.SuccessTypeMessage),
		Message:     message,
	}
}

func pageHostname(pageURL string) string {
	if pageURL == "" {
		return ""
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func deviceOf(value string) domain.Device {
	if value == string(domain.DeviceMobile) {
		return domain.DeviceMobile
	}
	return domain.DeviceDesktop
}

func stringValue(value any) string {
	text, _ := value.(string)
	return text
}
