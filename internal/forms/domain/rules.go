package domain

import "strings"

// RuleType is the closed set of auto-tag rule selectors. It decides which
// piece of the submission a rule inspects.
type RuleType string

const (
	RuleTypeForm    RuleType = "form"    // the form's name
	RuleTypeField   RuleType = "field"   // a submitted field value (Condition = field id)
	RuleTypeDomain  RuleType = "domain"  // the resolved embedding domain
	RuleTypeUTM     RuleType = "utm"     // a UTM parameter (Condition = parameter name)
	RuleTypeChannel RuleType = "channel" // the submission type (hosted/embedded/shared)
)

var knownRuleTypes = map[RuleType]struct{}{
	RuleTypeForm:    {},
	RuleTypeField:   {},
	RuleTypeDomain:  {},
	RuleTypeUTM:     {},
	RuleTypeChannel: {},
}

// Known reports whether t is a supported rule type.
func (t RuleType) Known() bool {
	_, ok := knownRuleTypes[t]
	return ok
}

// Operator compares a selected value against the rule operand.
type Operator string

const (
	OperatorEquals   Operator = "equals"
	OperatorContains Operator = "contains"
)

// Known reports whether o is a supported operator.
func (o Operator) Known() bool {
	return o == OperatorEquals || o == OperatorContains
}

// Rule is one configured auto-tag rule. Disabled rules are retained in the
// configuration but never evaluated.
type Rule struct {
	ID        string   `json:"id"`
	Type      RuleType `json:"type"`
	Condition string   `json:"condition"`
	Operator  Operator `json:"operator"`
	Value     string   `json:"value"`
	Tag       string   `json:"tag"`
	Enabled   bool     `json:"enabled"`
}

// Matches applies the rule's operator to the candidate value.
func (r Rule) Matches(candidate string) bool {
	switch r.Operator {
	case OperatorEquals:
		return candidate == r.Value
	case OperatorContains:
		return strings.Contains(candidate, r.Value)
	default:
		return false
	}
}
