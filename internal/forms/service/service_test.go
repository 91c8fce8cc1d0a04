package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadcapture_backend/internal/forms/domain"
	"leadcapture_backend/internal/forms/ports"
	"leadcapture_backend/internal/forms/repository"
	"leadcapture_backend/internal/forms/transport"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/logger"
)

type fakeRepo struct {
	forms map[string]domain.FormDefinition
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (domain.FormDefinition, error) {
	def, ok := r.forms[id]
	if !ok {
		return domain.FormDefinition{}, repository.ErrNotFound
	}
	return def, nil
}

func (r *fakeRepo) List(context.Context) ([]repository.FormRow, error) { return nil, nil }
func (r *fakeRepo) Create(_ context.Context, def domain.FormDefinition) error {
	r.forms[def.ID] = def
	return nil
}
func (r *fakeRepo) Update(_ context.Context, def domain.FormDefinition) error {
	if _, ok := r.forms[def.ID]; !ok {
		return repository.ErrNotFound
	}
	r.forms[def.ID] = def
	return nil
}
func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.forms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.forms, id)
	return nil
}

type fakeStore struct {
	records []ports.LeadRecord
	fail    error
}

func (s *fakeStore) AddLead(_ context.Context, record ports.LeadRecord) error {
	if s.fail != nil {
		return s.fail
	}
	s.records = append(s.records, record)
	return nil
}

type fakeLookup struct {
	ip string
}

func (l *fakeLookup) Lookup(context.Context) string { return l.ip }

func pipelineForm() domain.FormDefinition {
	return domain.FormDefinition{
		ID:   "contact",
		Name: "Contact Us",
		Type: domain.FormTypeMultiStep,
		Steps: []domain.Step{
			{Title: "About you", Fields: []domain.Field{
				{ID: "name", Type: domain.FieldTypeText, Label: "Name", Required: true},
				{ID: "email", Type: domain.FieldTypeEmail, Label: "Email", Required: true, Validation: &domain.ValidationRules{Email: true}},
			}},
			{Title: "Project", Fields: []domain.Field{
				{ID: "budget", Type: domain.FieldTypeDropdown, Label: "Budget", Options: []string{"< $5k", "$100k+"}},
				{ID: "timeline", Type: domain.FieldTypeDropdown, Label: "Timeline", Options: []string{"Immediate", "6+ months"}},
				{ID: "notes", Type: domain.FieldTypeTextarea, Label: "Notes"},
				{ID: "utm_source", Type: domain.FieldTypeText, Label: "utm_source"},
			}},
		},
		Settings: domain.SubmissionSettings{
			SuccessType:     domain.SuccessTypeMessage,
			SuccessMessage:  "Thanks!",
			CaptureMetadata: true,
			AutoScore:       true,
			PipelineStage:   "Triage",
			LeadTag:         "Web Lead",
			SourceConfig: domain.SourceConfig{
				SourceType:       "Website",
				DomainDetection:  true,
				AllowUTMOverride: true,
			},
		},
		HiddenFields: []string{"utm_source"},
	}
}

func newTestService(def domain.FormDefinition, store *fakeStore, lookup *fakeLookup) *Service {
	repo := &fakeRepo{forms: map[string]domain.FormDefinition{def.ID: def}}
	return New(repo, store, lookup, logger.New("test"))
}

func TestSubmit_FullPipeline(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(pipelineForm(), store, &fakeLookup{ip: "203.0.113.9"})

	started := time.Now().Add(-90 * time.Second)
	resp, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{
			"name":     "Ada Lovelace",
			"email":    "ada@example.com",
			"budget":   "$100k+",
			"timeline": "Immediate",
			"notes":    "urgent",
		},
		Context: transport.ClientContext{
			UTMSource:  "facebook",
			PageURL:    "https://forms.example.com/form/contact",
			Referrer:   "https://partner.example.com/page",
			IsEmbedded: true,
			Device:     "mobile",
			StartedAt:  &started,
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.SuccessType != "message" || resp.Message != "Thanks!" {
		t.Fatalf("response: %+v", resp)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected one stored record, got %d", len(store.records))
	}
	record := store.records[0]

	if record.Name != "Ada Lovelace" || record.Email != "ada@example.com" {
		t.Fatalf("standard fields: %+v", record)
	}
	// utm_source overrides source; channel still resolves to embedded
	if record.Source != "facebook" {
		t.Fatalf("source: got %q", record.Source)
	}
	if record.Metadata.SubmissionType != domain.SubmissionTypeEmbedded {
		t.Fatalf("submission type: got %q", record.Metadata.SubmissionType)
	}
	if record.LeadScore != 55 || record.Status != domain.LeadStatusQualified {
		t.Fatalf("scoring: score=%d status=%q", record.LeadScore, record.Status)
	}
	if !hasTag(record.Tags, "Web Lead") || !hasTag(record.Tags, domain.TagAutoQualified) || !hasTag(record.Tags, domain.TagEmbeddedForm) {
		t.Fatalf("tags: %v", record.Tags)
	}
	if record.Stage != "Triage" {
		t.Fatalf("stage: got %q", record.Stage)
	}

	// answers carry extra fields only: no standard fields, no hidden fields
	if _, ok := record.Answers["name"]; ok {
		t.Fatal("standard field leaked into answers")
	}
	if _, ok := record.Answers["utm_source"]; ok {
		t.Fatal("hidden field leaked into answers")
	}
	if record.Answers["notes"] != "urgent" {
		t.Fatalf("answers: %v", record.Answers)
	}

	if record.Metadata.IPAddress != "203.0.113.9" {
		t.Fatalf("ip: got %q", record.Metadata.IPAddress)
	}
	if record.Metadata.Domain != "partner.example.com" {
		t.Fatalf("resolved domain: got %q", record.Metadata.Domain)
	}
	if record.Metadata.CompletionSecs < 89 || record.Metadata.CompletionSecs > 92 {
		t.Fatalf("completion time: got %d", record.Metadata.CompletionSecs)
	}
	if record.Metadata.Device != domain.DeviceMobile {
		t.Fatalf("device: got %q", record.Metadata.Device)
	}
}

func TestSubmit_ValidationFailureProducesNoLead(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(pipelineForm(), store, &fakeLookup{ip: "unknown"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"email": "not-an-email"},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details := err.(*apperr.Error).Details.(map[string]string)
	if details["name"] != "Name is required" {
		t.Fatalf("name detail: %q", details["name"])
	}
	if details["email"] != "Invalid email address" {
		t.Fatalf("email detail: %q", details["email"])
	}

	if len(store.records) != 0 {
		t.Fatal("no lead may be produced on validation failure")
	}
}

func TestSubmit_StoreFailureIsGenericAndRetryable(t *testing.T) {
	store := &fakeStore{fail: errors.New("connection refused")}
	svc := newTestService(pipelineForm(), store, &fakeLookup{ip: "unknown"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
	})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err.(*apperr.Error).Message != msgSubmissionFailed {
		t.Fatalf("message: %q", err.(*apperr.Error).Message)
	}
}

func TestSubmit_LookupDegradationIsNonFatal(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(pipelineForm(), store, &fakeLookup{ip: "unknown"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if store.records[0].Metadata.IPAddress != "unknown" {
		t.Fatalf("ip: got %q", store.records[0].Metadata.IPAddress)
	}
}

func TestSubmit_GDPRMasksIP(t *testing.T) {
	def := pipelineForm()
	def.Settings.GDPRCompliant = true
	store := &fakeStore{}
	svc := newTestService(def, store, &fakeLookup{ip: "203.0.113.9"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if store.records[0].Metadata.IPAddress != "masked" {
		t.Fatalf("ip: got %q", store.records[0].Metadata.IPAddress)
	}
}

func TestSubmit_MetadataCaptureDisabled(t *testing.T) {
	def := pipelineForm()
	def.Settings.CaptureMetadata = false
	store := &fakeStore{}
	svc := newTestService(def, store, &fakeLookup{ip: "203.0.113.9"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
		Context: transport.ClientContext{
			PageURL:  "https://forms.example.com/form/contact",
			Referrer: "https://partner.example.com/page",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	meta := store.records[0].Metadata
	if meta.FormID != "contact" || meta.FormName != "Contact Us" {
		t.Fatalf("form identity must always be recorded: %+v", meta)
	}
	if meta.IPAddress != "" || meta.Referrer != "" || meta.PageURL != "" {
		t.Fatalf("context must not be recorded when capture is disabled: %+v", meta)
	}
}

func TestSubmit_AutoScoreDisabled(t *testing.T) {
	def := pipelineForm()
	def.Settings.AutoScore = false
	store := &fakeStore{}
	svc := newTestService(def, store, &fakeLookup{ip: "unknown"})

	_, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{
			"name":     "Ada",
			"email":    "ada@example.com",
			"budget":   "$100k+",
			"timeline": "Immediate",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	record := store.records[0]
	if record.LeadScore != 0 || record.Status != domain.LeadStatusNew {
		t.Fatalf("scoring must be off: score=%d status=%q", record.LeadScore, record.Status)
	}
	if hasTag(record.Tags, domain.TagAutoQualified) {
		t.Fatalf("tags: %v", record.Tags)
	}
}

func TestSubmit_RedirectSuccess(t *testing.T) {
	def := pipelineForm()
	def.Settings.SuccessType = domain.SuccessTypeRedirect
	def.Settings.RedirectURL = "https://example.com/thanks"
	store := &fakeStore{}
	svc := newTestService(def, store, &fakeLookup{ip: "unknown"})

	resp, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.SuccessType != "redirect" || resp.RedirectURL != "https://example.com/thanks" {
		t.Fatalf("response: %+v", resp)
	}
}

func TestSubmit_RedirectWithoutURLFallsBackToMessage(t *testing.T) {
	def := pipelineForm()
	def.Settings.SuccessType = domain.SuccessTypeRedirect
	def.Settings.RedirectURL = ""
	def.Settings.SuccessMessage = ""
	store := &fakeStore{}
	svc := newTestService(def, store, &fakeLookup{ip: "unknown"})

	resp, err := svc.Submit(context.Background(), "contact", transport.SubmissionRequest{
		Values: map[string]any{"name": "Ada", "email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.SuccessType != "message" || resp.Message != defaultSuccessMessage {
		t.Fatalf("response: %+v", resp)
	}
}

func TestSubmit_UnknownFormID(t *testing.T) {
	svc := newTestService(pipelineForm(), &fakeStore{}, &fakeLookup{ip: "unknown"})

	_, err := svc.Submit(context.Background(), "missing", transport.SubmissionRequest{
		Values: map[string]any{},
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestValidateStep(t *testing.T) {
	svc := newTestService(pipelineForm(), &fakeStore{}, &fakeLookup{ip: "unknown"})

	result, err := svc.ValidateStep(context.Background(), "contact", 0, map[string]any{"email": "bad"})
	if err != nil {
		t.Fatalf("validate step: %v", err)
	}
	if result.Valid || result.Errors["email"] != "Invalid email address" {
		t.Fatalf("result: %+v", result)
	}

	if _, err := svc.ValidateStep(context.Background(), "contact", 5, nil); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for out-of-range step, got %v", err)
	}
}

func TestCreateForm_RejectsInvalidDefinition(t *testing.T) {
	svc := newTestService(pipelineForm(), &fakeStore{}, &fakeLookup{ip: "unknown"})

	def := pipelineForm()
	def.ID = "broken"
	def.Steps[0].Fields = append(def.Steps[0].Fields, domain.Field{ID: "name", Type: domain.FieldTypeText, Label: "Name"})

	if _, err := svc.CreateForm(context.Background(), def); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func hasTag(tags []string, tag string) bool {
	for _, item := range tags {
		if item == tag {
			return true
		}
	}
	return false
}
