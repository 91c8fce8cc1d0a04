package domain

import (
	"reflect"
	"testing"
)

func TestComputeTags_BaseAndChannelTags(t *testing.T) {
	settings := SubmissionSettings{LeadTag: "Web Lead"}

	tags := ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeEmbedded}, nil, "Contact", 0)
	want := []string{"Web Lead", TagEmbeddedForm}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("embedded: got %v, want %v", tags, want)
	}

	tags = ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeShared}, nil, "Contact", 0)
	want = []string{"Web Lead", TagSharedLink}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("shared: got %v, want %v", tags, want)
	}

	tags = ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeHosted}, nil, "Contact", 0)
	want = []string{"Web Lead"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("hosted: got %v, want %v", tags, want)
	}
}

func TestComputeTags_AutoQualifiedThreshold(t *testing.T) {
	settings := SubmissionSettings{}
	sctx := SubmissionContext{SubmissionType: SubmissionTypeHosted}

	tags := ComputeTags(settings, sctx, nil, "Contact", 49)
	if containsTag(tags, TagAutoQualified) {
		t.Fatalf("score 49 must not auto-qualify: %v", tags)
	}

	tags = ComputeTags(settings, sctx, nil, "Contact", 50)
	if !containsTag(tags, TagAutoQualified) {
		t.Fatalf("score 50 must auto-qualify: %v", tags)
	}
}

func TestComputeTags_RuleSelectors(t *testing.T) {
	settings := SubmissionSettings{
		AutoTagRules: []Rule{
			{ID: "r1", Type: RuleTypeForm, Operator: OperatorContains, Value: "Demo", Tag: "Demo Request", Enabled: true},
			{ID: "r2", Type: RuleTypeField, Condition: "budget", Operator: OperatorEquals, Value: "$100k+", Tag: "Big Budget", Enabled: true},
			{ID: "r3", Type: RuleTypeDomain, Operator: OperatorContains, Value: "partner", Tag: "Partner Site", Enabled: true},
			{ID: "r4", Type: RuleTypeUTM, Condition: "utm_campaign", Operator: OperatorEquals, Value: "spring", Tag: "Spring Campaign", Enabled: true},
			{ID: "r5", Type: RuleTypeChannel, Operator: OperatorEquals, Value: "embedded", Tag: "Embedded Channel", Enabled: true},
		},
	}
	sctx := SubmissionContext{
		SubmissionType: SubmissionTypeEmbedded,
		Domain:         "partner.example.com",
		UTMCampaign:    "spring",
	}
	answers := map[string]any{"budget": "$100k+"}

	tags := ComputeTags(settings, sctx, answers, "Book a Demo", 0)
	want := []string{TagEmbeddedForm, "Demo Request", "Big Budget", "Partner Site", "Spring Campaign", "Embedded Channel"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestComputeTags_DisabledRulesAreInert(t *testing.T) {
	settings := SubmissionSettings{
		AutoTagRules: []Rule{
			{ID: "r1", Type: RuleTypeForm, Operator: OperatorContains, Value: "", Tag: "Always", Enabled: false},
		},
	}

	tags := ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeHosted}, nil, "Contact", 0)
	if containsTag(tags, "Always") {
		t.Fatalf("disabled rule must not fire: %v", tags)
	}
}

func TestComputeTags_NoDuplicates(t *testing.T) {
	settings := SubmissionSettings{
		LeadTag: "Hot",
		AutoTagRules: []Rule{
			{ID: "r1", Type: RuleTypeForm, Operator: OperatorContains, Value: "", Tag: "Hot", Enabled: true},
			{ID: "r2", Type: RuleTypeChannel, Operator: OperatorEquals, Value: "hosted", Tag: "Hot", Enabled: true},
		},
	}

	tags := ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeHosted}, nil, "Contact", 0)
	want := []string{"Hot"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestComputeTags_MissingFieldRuleDoesNotFire(t *testing.T) {
	settings := SubmissionSettings{
		AutoTagRules: []Rule{
			{ID: "r1", Type: RuleTypeField, Condition: "absent", Operator: OperatorContains, Value: "", Tag: "Ghost", Enabled: true},
		},
	}

	tags := ComputeTags(settings, SubmissionContext{SubmissionType: SubmissionTypeHosted}, map[string]any{}, "Contact", 0)
	if containsTag(tags, "Ghost") {
		t.Fatalf("rule over a missing field must not fire: %v", tags)
	}
}

func containsTag(tags []string, tag string) bool {
	for _, item := range tags {
		if item == tag {
			return true
		}
	}
	return false
}
