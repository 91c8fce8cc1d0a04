package domain

import (
	"encoding/json"
	"testing"
)

func validDefinition() FormDefinition {
	return FormDefinition{
		ID:   "lead-capture",
		Name: "Lead Capture",
		Type: FormTypeMultiStep,
		Steps: []Step{
			{Title: "Contact", Fields: []Field{
				{ID: "name", Type: FieldTypeText, Label: "Name", Required: true},
				{ID: "email", Type: FieldTypeEmail, Label: "Email", Required: true, Validation: &ValidationRules{Email: true}},
			}},
			{Title: "Project", Fields: []Field{
				{ID: "budget", Type: FieldTypeDropdown, Label: "Budget", Options: []string{"< $5k", "$100k+"}},
			}},
		},
		Settings: SubmissionSettings{
			SuccessType: SuccessTypeMessage,
			LeadTag:     "Web Lead",
			SourceConfig: SourceConfig{
				SourceType:       "Website",
				DomainDetection:  true,
				AllowUTMOverride: true,
			},
			AutoTagRules: []Rule{
				{ID: "r1", Type: RuleTypeUTM, Condition: "utm_source", Operator: OperatorEquals, Value: "facebook", Tag: "Facebook", Enabled: true},
			},
		},
		HiddenFields: []string{"utm_source"},
	}
}

func TestFormDefinition_Validate(t *testing.T) {
	def := validDefinition()
	if err := def.Validate(); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}
}

func TestFormDefinition_ValidateRejectsDuplicateFieldIDs(t *testing.T) {
	def := validDefinition()
	// same id in a different step: still a duplicate, submitted data is flat
	def.Steps[1].Fields = append(def.Steps[1].Fields, Field{ID: "name", Type: FieldTypeText, Label: "Name"})

	if err := def.Validate(); err == nil {
		t.Fatal("expected duplicate field id error")
	}
}

func TestFormDefinition_ValidateRejectsOptionlessDropdown(t *testing.T) {
	def := validDefinition()
	def.Steps[1].Fields[0].Options = nil

	if err := def.Validate(); err == nil {
		t.Fatal("expected missing options error")
	}
}

func TestFormDefinition_ValidateRejectsUnknownRuleType(t *testing.T) {
	def := validDefinition()
	def.Settings.AutoTagRules[0].Type = "referrer"

	if err := def.Validate(); err == nil {
		t.Fatal("expected unknown rule type error")
	}
}

func TestFormDefinition_ValidateRejectsMultiStepSingle(t *testing.T) {
	def := validDefinition()
	def.Type = FormTypeSingleStep

	if err := def.Validate(); err == nil {
		t.Fatal("expected step count error for single-step form with two steps")
	}
}

// A definition serialized and reloaded must behave identically for the same
// inputs.
func TestFormDefinition_RoundTripBehaviorParity(t *testing.T) {
	def := validDefinition()

	raw, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var reloaded FormDefinition
	if err := json.Unmarshal(raw, &reloaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if err := reloaded.Validate(); err != nil {
		t.Fatalf("reloaded definition rejected: %v", err)
	}

	answers := map[string]any{"email": "nope"}
	before := ValidateStep(def.Steps[0], answers)
	after := ValidateStep(reloaded.Steps[0], answers)
	if before.Valid != after.Valid || before.Errors["email"] != after.Errors["email"] {
		t.Fatalf("validation behavior changed across round-trip: %+v vs %+v", before, after)
	}

	ctx := RawContext{UTMSource: "facebook", Hostname: "forms.example.com"}
	if ResolveAttribution(def.Settings.SourceConfig, ctx) != ResolveAttribution(reloaded.Settings.SourceConfig, ctx) {
		t.Fatal("attribution behavior changed across round-trip")
	}
}
