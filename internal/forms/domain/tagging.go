package domain

// Channel and score tags applied in addition to configured rules.
const (
	TagEmbeddedForm  = "Embedded Form"
	TagSharedLink    = "Shared Link"
	TagAutoQualified = "Auto-Qualified"
)

// ComputeTags evaluates the form's auto-tag configuration against one
// submission and returns the resulting tag set, deduplicated in
// first-seen order.
//
// The base tag and channel/score tags are always considered first, then
// every enabled rule in configuration order. All matching rules
// contribute, not just the first.
func ComputeTags(settings SubmissionSettings, sctx SubmissionContext, answers map[string]any, formName string, leadScore int) []string {
	tags := make([]string, 0, 4)
	seen := make(map[string]struct{})

	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(settings.LeadTag)

	switch sctx.SubmissionType {
	case SubmissionTypeEmbedded:
		add(TagEmbeddedForm)
	case SubmissionTypeShared:
		add(TagSharedLink)
	}

	if leadScore >= QualificationThreshold {
		add(TagAutoQualified)
	}

	for _, rule := range settings.AutoTagRules {
		if !rule.Enabled {
			continue
		}
		candidate, ok := ruleCandidate(rule, sctx, answers, formName)
		if !ok {
			continue
		}
		if rule.Matches(candidate) {
			add(rule.Tag)
		}
	}

	return tags
}

// ruleCandidate resolves the value a rule compares against, based on the
// rule's selector type.
func ruleCandidate(rule Rule, sctx SubmissionContext, answers map[string]any, formName string) (string, bool) {
	switch rule.Type {
	case RuleTypeForm:
		return formName, true
	case RuleTypeField:
		value, ok := answers[rule.Condition]
		if !ok || isEmptyValue(value) {
			return "", false
		}
		return textValue(value), true
	case RuleTypeDomain:
		return sctx.Domain, true
	case RuleTypeUTM:
		return sctx.UTMValue(rule.Condition)
	case RuleTypeChannel:
		return string(sctx.SubmissionType), true
	default:
		return "", false
	}
}
