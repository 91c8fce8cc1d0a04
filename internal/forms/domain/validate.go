package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// minimum characters a phone value must have in addition to matching the
// allowed character set
const phoneMinLength = 10

// ValidateField checks a single value against a field's rules and returns
// the first failing rule's message, or "" when the value is valid.
//
// The rule order is fixed: required, email, phone, minLength, maxLength,
// min, max. Format rules only apply to present values, so an optional empty
// field is always valid.
func ValidateField(field Field, value any) string {
	if field.Required && isEmptyValue(value) {
		return fmt.Sprintf("%s is required", field.Label)
	}
	if isEmptyValue(value) || field.Validation == nil {
		return ""
	}

	rules := field.Validation
	text := textValue(value)

	if rules.Email && !emailPattern.MatchString(text) {
		return "Invalid email address"
	}
	if rules.Phone && (!phonePattern.MatchString(text) || utf8.RuneCountInString(text) < phoneMinLength) {
		return "Invalid phone number"
	}
	if rules.MinLength != nil && utf8.RuneCountInString(text) < *rules.MinLength {
		return fmt.Sprintf("Minimum %d characters required", *rules.MinLength)
	}
	if rules.MaxLength != nil && utf8.RuneCountInString(text) > *rules.MaxLength {
		return fmt.Sprintf("Maximum %d characters allowed", *rules.MaxLength)
	}

	if rules.Min != nil || rules.Max != nil {
		number, ok := numericValue(value)
		if ok {
			if rules.Min != nil && number < *rules.Min {
				return fmt.Sprintf("Minimum value is %s", formatBound(*rules.Min))
			}
			if rules.Max != nil && number > *rules.Max {
				return fmt.Sprintf("Maximum value is %s", formatBound(*rules.Max))
			}
		}
	}

	return ""
}

// StepValidation is the result of validating one step's values.
type StepValidation struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// ValidateStep runs ValidateField over every field in the step. A step is
// valid iff no field reports an error.
func ValidateStep(step Step, answers map[string]any) StepValidation {
	errors := make(map[string]string)
	for _, field := range step.Fields {
		if message := ValidateField(field, answers[field.ID]); message != "" {
			errors[field.ID] = message
		}
	}
	return StepValidation{Valid: len(errors) == 0, Errors: errors}
}

// isEmptyValue matches the renderer's notion of "nothing entered":
// nil, an empty string, or an empty selection.
func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// textValue renders a submitted value as the string the length and format
// rules inspect.
func textValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numericValue extracts a number from a submitted value. JSON decoding
// yields float64; number inputs posted as text arrive as strings.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}
