package domain

import "testing"

func twoStepForm() FormDefinition {
	return FormDefinition{
		ID:   "demo",
		Name: "Demo",
		Type: FormTypeMultiStep,
		Steps: []Step{
			{Title: "About you", Fields: []Field{
				{ID: "name", Type: FieldTypeText, Label: "Name", Required: true},
			}},
			{Title: "Project", Fields: []Field{
				{ID: "budget", Type: FieldTypeDropdown, Label: "Budget", Required: true, Options: []string{"< $5k", "$100k+"}},
			}},
		},
		HiddenFields: []string{"utm_source", "utm_campaign"},
	}
}

func TestSession_NextGatedOnValidation(t *testing.T) {
	session := NewSession(twoStepForm())

	if session.Next() {
		t.Fatal("Next must fail while the step is invalid")
	}
	if session.StepIndex() != 0 {
		t.Fatalf("index moved on failed Next: %d", session.StepIndex())
	}
	if session.Errors()["name"] == "" {
		t.Fatal("failed Next must surface field errors")
	}

	session.Set("name", "Ada")
	if !session.Next() {
		t.Fatal("Next must succeed once the step validates")
	}
	if session.StepIndex() != 1 {
		t.Fatalf("index: got %d, want 1", session.StepIndex())
	}
	if len(session.Errors()) != 0 {
		t.Fatal("advancing must clear the prior step's errors")
	}
}

func TestSession_BackIsUnconditional(t *testing.T) {
	session := NewSession(twoStepForm())
	session.Set("name", "Ada")
	session.Next()

	session.Back()
	if session.StepIndex() != 0 {
		t.Fatalf("index after Back: %d", session.StepIndex())
	}
	// entered data survives going back
	if session.Answers()["name"] != "Ada" {
		t.Fatal("Back must not clear entered data")
	}

	session.Back()
	if session.StepIndex() != 0 {
		t.Fatal("Back on the first step must stay put")
	}
}

func TestSession_SubmitOnlyFromTerminalStep(t *testing.T) {
	session := NewSession(twoStepForm())
	session.Set("name", "Ada")
	session.Set("budget", "$100k+")

	if session.CanSubmit() {
		t.Fatal("submit must be rejected before the terminal step")
	}

	session.Next()
	if !session.Terminal() {
		t.Fatal("expected terminal step")
	}
	if !session.CanSubmit() {
		t.Fatal("submit must be allowed from a valid terminal step")
	}
}

func TestSession_SubmitRejectedWhenTerminalStepInvalid(t *testing.T) {
	session := NewSession(twoStepForm())
	session.Set("name", "Ada")
	session.Next()

	if session.CanSubmit() {
		t.Fatal("submit must be rejected while the terminal step is invalid")
	}
	if session.Errors()["budget"] == "" {
		t.Fatal("rejected submit must surface field errors")
	}
}

func TestSession_SeedHiddenFields(t *testing.T) {
	session := NewSession(twoStepForm())
	session.SeedHiddenFields(map[string]string{
		"utm_source": "newsletter",
		"utm_medium": "email", // not a hidden field of this form
	})

	answers := session.Answers()
	if answers["utm_source"] != "newsletter" {
		t.Fatalf("hidden field not seeded: %v", answers)
	}
	if _, ok := answers["utm_medium"]; ok {
		t.Fatal("non-hidden parameter must be ignored")
	}
}

func TestSession_Reset(t *testing.T) {
	session := NewSession(twoStepForm())
	session.Set("name", "Ada")
	session.Next()

	session.Reset()
	if session.StepIndex() != 0 {
		t.Fatalf("index after reset: %d", session.StepIndex())
	}
	if len(session.Answers()) != 0 {
		t.Fatal("reset must discard answers")
	}
}

func TestSession_SingleStepFormIsImmediatelyTerminal(t *testing.T) {
	def := FormDefinition{
		ID:   "mini",
		Name: "Mini",
		Type: FormTypeSingleStep,
		Steps: []Step{
			{Title: "Contact", Fields: []Field{{ID: "email", Type: FieldTypeEmail, Label: "Email"}}},
		},
	}

	session := NewSession(def)
	if !session.Terminal() {
		t.Fatal("single-step form must start terminal")
	}
}
