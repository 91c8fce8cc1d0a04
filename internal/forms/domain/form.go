// Package domain holds the form engine's core types and pure logic:
// the form schema, field validation, step sequencing, attribution
// resolution, auto-tagging and lead scoring.
package domain

import "fmt"

// FormType distinguishes single-step from multi-step forms.
type FormType string

const (
	FormTypeSingleStep FormType = "single-step"
	FormTypeMultiStep  FormType = "multi-step"
)

// FieldType is the closed set of supported field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeFile     FieldType = "file"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeText:     {},
	FieldTypeEmail:    {},
	FieldTypePhone:    {},
	FieldTypeNumber:   {},
	FieldTypeTextarea: {},
	FieldTypeDropdown: {},
	FieldTypeCheckbox: {},
	FieldTypeRadio:    {},
	FieldTypeFile:     {},
}

// Known reports whether t is a supported field type.
func (t FieldType) Known() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// HasOptions reports whether fields of this type require a non-empty
// options list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeDropdown || t == FieldTypeRadio || t == FieldTypeCheckbox
}

// ValidationRules are the optional per-field constraints.
type ValidationRules struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Email     bool     `json:"email,omitempty"`
	Phone     bool     `json:"phone,omitempty"`
	FileTypes []string `json:"fileTypes,omitempty"`
	MaxSize   *int64   `json:"maxSize,omitempty"` // bytes
}

// Field is a single input in a form step.
type Field struct {
	ID          string           `json:"id"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Validation  *ValidationRules `json:"validation,omitempty"`
	Options     []string         `json:"options,omitempty"`
}

// Step is one page of a form.
type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// SuccessType selects the post-submission behavior.
type SuccessType string

const (
	SuccessTypeMessage  SuccessType = "message"
	SuccessTypeCustom   SuccessType = "custom"
	SuccessTypeRedirect SuccessType = "redirect"
)

// SourceConfig controls how a submission's source is attributed.
type SourceConfig struct {
	SourceType       string `json:"sourceType"`
	DomainDetection  bool   `json:"domainDetection"`
	AllowUTMOverride bool   `json:"allowUtmOverride"`
}

// SubmissionSettings configure the submission pipeline for a form.
type SubmissionSettings struct {
	SubmitText        string       `json:"submitText"`
	SuccessType       SuccessType  `json:"successType"`
	SuccessMessage    string       `json:"successMessage"`
	CustomMessage     string       `json:"customMessage"`
	RedirectURL       string       `json:"redirectUrl"`
	NotificationEmail string       `json:"notificationEmail"`
	CaptureMetadata   bool         `json:"captureMetadata"`
	GDPRCompliant     bool         `json:"gdprCompliant"`
	AutoScore         bool         `json:"autoScore"`
	PipelineStage     string       `json:"pipelineStage"`
	LeadTag           string       `json:"leadTag"`
	SourceConfig      SourceConfig `json:"sourceConfig"`
	AutoTagRules      []Rule       `json:"autoTagRules,omitempty"`
}

// FormDefinition is the full schema of a form. It is immutable once
// loaded for a rendering session; all submission state lives outside it.
type FormDefinition struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Type         FormType           `json:"type"`
	Steps        []Step             `json:"steps"`
	Settings     SubmissionSettings `json:"settings"`
	HiddenFields []string           `json:"hiddenFields,omitempty"`
}

// Validate checks the structural invariants of a definition: at least one
// step, known field types, field IDs unique across the whole form (submitted
// data is one flat map keyed by field ID), options present where required,
// and well-formed auto-tag rules.
func (d *FormDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("form name is required")
	}
	if d.Type != FormTypeSingleStep && d.Type != FormTypeMultiStep {
		return fmt.Errorf("unknown form type %q", d.Type)
	}
	if len(d.Steps) == 0 {
		return fmt.Errorf("form must have at least one step")
	}
	if d.Type == FormTypeSingleStep && len(d.Steps) != 1 {
		return fmt.Errorf("single-step form must have exactly one step, got %d", len(d.Steps))
	}

	seen := make(map[string]struct{})
	for stepIdx, step := range d.Steps {
		for _, field := range step.Fields {
			if field.ID == "" {
				return fmt.Errorf("step %d: field without id", stepIdx)
			}
			if _, dup := seen[field.ID]; dup {
				return fmt.Errorf("duplicate field id %q", field.ID)
			}
			seen[field.ID] = struct{}{}

			if !field.Type.Known() {
				return fmt.Errorf("field %q: unknown type %q", field.ID, field.Type)
			}
			if field.Type.HasOptions() && len(field.Options) == 0 {
				return fmt.Errorf("field %q: %s fields require options", field.ID, field.Type)
			}
		}
	}

	for _, rule := range d.Settings.AutoTagRules {
		if !rule.Type.Known() {
			return fmt.Errorf("auto-tag rule %q: unknown type %q", rule.ID, rule.Type)
		}
		if !rule.Operator.Known() {
			return fmt.Errorf("auto-tag rule %q: unknown operator %q", rule.ID, rule.Operator)
		}
		if rule.Tag == "" {
			return fmt.Errorf("auto-tag rule %q: tag is required", rule.ID)
		}
	}

	return nil
}

// FieldByID finds a field anywhere in the form.
func (d *FormDefinition) FieldByID(id string) (Field, bool) {
	for _, step := range d.Steps {
		for _, field := range step.Fields {
			if field.ID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}

// TerminalIndex is the index of the last step.
func (d *FormDefinition) TerminalIndex() int {
	return len(d.Steps) - 1
}

// IsHidden reports whether the field ID is one of the form's hidden fields
// (pre-filled from URL parameters, excluded from the lead's answer set).
func (d *FormDefinition) IsHidden(fieldID string) bool {
	for _, hidden := range d.HiddenFields {
		if hidden == fieldID {
			return true
		}
	}
	return false
}
