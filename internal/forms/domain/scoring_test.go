package domain

import "testing"

func TestScoreAnswers_ScenarioA(t *testing.T) {
	answers := map[string]any{
		"budget":      "$100k+",
		"timeline":    "Immediate",
		"companySize": "11-50",
		"services":    []any{},
	}

	score := ScoreAnswers(answers)
	if score != 55 {
		t.Fatalf("score: got %d, want 55", score)
	}
	if StatusForScore(score) != LeadStatusQualified {
		t.Fatalf("status: got %q", StatusForScore(score))
	}
}

func TestScoreAnswers_ScenarioB(t *testing.T) {
	answers := map[string]any{
		"budget":   "< $5k",
		"timeline": "6+ months",
	}

	score := ScoreAnswers(answers)
	if score != 0 {
		t.Fatalf("score: got %d, want 0", score)
	}
	if StatusForScore(score) != LeadStatusNew {
		t.Fatalf("status: got %q", StatusForScore(score))
	}
}

func TestScoreAnswers_ServicesCount(t *testing.T) {
	if got := ScoreAnswers(map[string]any{"services": []any{"a", "b"}}); got != 0 {
		t.Fatalf("two services: got %d", got)
	}
	if got := ScoreAnswers(map[string]any{"services": []any{"a", "b", "c"}}); got != 15 {
		t.Fatalf("three services: got %d", got)
	}
	if got := ScoreAnswers(map[string]any{"services": []string{"a", "b", "c"}}); got != 15 {
		t.Fatalf("three services ([]string): got %d", got)
	}
}

func TestScoreAnswers_Empty(t *testing.T) {
	if got := ScoreAnswers(nil); got != 0 {
		t.Fatalf("nil answers: got %d", got)
	}
}

func TestStatusForScore_Boundary(t *testing.T) {
	if StatusForScore(49) != LeadStatusNew {
		t.Fatal("score 49 must be New")
	}
	if StatusForScore(50) != LeadStatusQualified {
		t.Fatal("score 50 must be Qualified")
	}
}
