package score

import "testing"

func TestScorecard_AddScoreClampsToCheckMax(t *testing.T) {
	sc := NewScorecard("quality", 20)
	sc.AddScore(10, 5, "comment density")

	if got := sc.Score(); got != 5 {
		t.Errorf("score = %v, want 5 (clamped to check max)", got)
	}
}

func TestScorecard_AddScoreClampsToCategoryCap(t *testing.T) {
	sc := NewScorecard("performance", 10)
	sc.AddScore(6, 6, "concurrency")
	sc.AddScore(6, 6, "caching")

	if got := sc.Score(); got != 10 {
		t.Errorf("score = %v, want 10 (clamped to category cap)", got)
	}
}

func TestScorecard_NegativePointsIgnored(t *testing.T) {
	sc := NewScorecard("security", 15)
	sc.AddScore(3, 4, "secrets")
	sc.AddScore(-2, 4, "never subtracts")

	if got := sc.Score(); got != 3 {
		t.Errorf("score = %v, want 3 (negative points dropped)", got)
	}
}

func TestScorecard_ResultAccumulation(t *testing.T) {
	sc := NewScorecard("testing", 15)
	sc.AddScore(4, 6, "test files")
	sc.AddIssue("No CI configuration found", ".github/workflows missing")
	sc.AddSuggestion(Suggestion{
		Text:       "Add a CI workflow",
		Impact:     3,
		Confidence: 0.9,
		Priority:   PriorityHigh,
	})
	sc.SetDetail("test_file_count", 12)

	res := sc.Result()
	if res.Name != "testing" || res.MaxScore != 15 {
		t.Fatalf("unexpected result header: %+v", res)
	}
	if res.Score != 4 {
		t.Errorf("score = %v, want 4", res.Score)
	}
	if len(res.Issues) != 1 || len(res.Suggestions) != 1 {
		t.Fatalf("issues/suggestions = %d/%d, want 1/1", len(res.Issues), len(res.Suggestions))
	}
	if res.Suggestions[0].Category != "testing" {
		t.Errorf("suggestion category = %q, want %q (stamped by scorecard)", res.Suggestions[0].Category, "testing")
	}
	if res.Details["test_file_count"] != 12 {
		t.Errorf("detail not recorded: %v", res.Details)
	}
	if len(res.Checks) != 1 || res.Checks[0].Reason != "test files" {
		t.Errorf("check reasons not recorded: %+v", res.Checks)
	}
}
