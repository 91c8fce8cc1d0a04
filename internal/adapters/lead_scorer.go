package adapters

import (
	formsdomain "leadcapture_backend/internal/forms/domain"
	leadssvc "leadcapture_backend/internal/leads/service"
)

// LeadScorerAdapter exposes the form engine's scoring rules to the leads
// rescore backfill.
type LeadScorerAdapter struct{}

func (LeadScorerAdapter) Score(answers map[string]any) int {
	return formsdomain.ScoreAnswers(answers)
}

func (LeadScorerAdapter) StatusFor(score int) string {
	return string(formsdomain.StatusForScore(score))
}

var _ leadssvc.Scorer = LeadScorerAdapter{}
