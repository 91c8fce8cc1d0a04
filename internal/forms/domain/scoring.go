package domain

// QualificationThreshold is the score at or above which a lead is
// considered qualified.
const QualificationThreshold = 50

// LeadStatus is the initial qualification status of a captured lead.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusQualified LeadStatus = "Qualified"
)

// Fixed additive scoring weights. Answers that match contribute their
// weight; everything else contributes zero.
const (
	scoreBudgetTop       = 30 // budget "$100k+"
	scoreTimelineNow     = 25 // timeline "Immediate"
	scoreCompanyLarge    = 20 // companySize "500+"
	scoreManyServices    = 15 // more than two services selected
	servicesCountTrigger = 2
)

// ScoreAnswers computes the lead qualification score from submitted
// answers. Purely additive with fixed weights; the result is never
// negative.
func ScoreAnswers(answers map[string]any) int {
	score := 0

	if stringAnswer(answers, "budget") == "$100k+" {
		score += scoreBudgetTop
	}
	if stringAnswer(answers, "timeline") == "Immediate" {
		score += scoreTimelineNow
	}
	if stringAnswer(answers, "companySize") == "500+" {
		score += scoreCompanyLarge
	}
	if selectionCount(answers["services"]) > servicesCountTrigger {
		score += scoreManyServices
	}

	return score
}

// StatusForScore maps a score to the initial lead status.
func StatusForScore(score int) LeadStatus {
	if score >= QualificationThreshold {
		return LeadStatusQualified
	}
	return LeadStatusNew
}

func stringAnswer(answers map[string]any, key string) string {
	value, ok := answers[key].(string)
	if !ok {
		return ""
	}
	return value
}

func selectionCount(value any) int {
	switch v := value.(type) {
	case []string:
		return len(v)
	case []any:
		return len(v)
	default:
		return 0
	}
}
