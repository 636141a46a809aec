package score

// Scorecard accumulates one analyzer's partial scores, issues, and
// suggestions during a run. Scoring is purely additive: deductions are
// expressed by not awarding points plus an Issue, never by negative scores.
type Scorecard struct {
	name   string
	max    float64
	result CategoryResult
}

// NewScorecard creates a fresh scorecard for the named category with the
// given point cap. Analyzers create one at the start of each Run, so no
// state leaks between runs.
func NewScorecard(name string, max float64) *Scorecard {
	return &Scorecard{
		name: name,
		max:  max,
		result: CategoryResult{
			Name:     name,
			MaxScore: max,
			Details:  make(map[string]any),
		},
	}
}

// AddScore awards points for one sub-check. Points are clamped to
// [0, max] and the running total is clamped to the category cap.
func (s *Scorecard) AddScore(points, max float64, reason string) {
	if points < 0 {
		points = 0
	}
	if points > max {
		points = max
	}
	if s.result.Score+points > s.max {
		points = s.max - s.result.Score
	}
	s.result.Score += points
	s.result.Checks = append(s.result.Checks, CheckScore{
		Reason: reason,
		Points: points,
		Max:    max,
	})
}

// AddIssue records a deduction-worthy finding.
func (s *Scorecard) AddIssue(message, detail string) {
	s.result.Issues = append(s.result.Issues, Issue{Message: message, Detail: detail})
}

// AddSuggestion records an actionable recommendation. The suggestion's
// category is stamped with the scorecard's name.
func (s *Scorecard) AddSuggestion(sug Suggestion) {
	sug.Category = s.name
	s.result.Suggestions = append(s.result.Suggestions, sug)
}

// SetDetail attaches a free-form diagnostic value to the result.
func (s *Scorecard) SetDetail(key string, value any) {
	s.result.Details[key] = value
}

// Score returns the current accumulated score.
func (s *Scorecard) Score() float64 {
	return s.result.Score
}

// Result returns the accumulated CategoryResult.
func (s *Scorecard) Result() CategoryResult {
	return s.result
}
