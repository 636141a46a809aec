// Package rank orders improvement suggestions by expected value.
package rank

import (
	"sort"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Composite score weights. Confidence dominates because analyzers report it
// from direct evidence; relevance and acceptance refine the ordering.
const (
	weightConfidence = 0.5
	weightRelevance  = 0.3
	weightAcceptance = 0.2

	// neutralPrior is used when a component has no signal to contribute:
	// a suggestion with no framework patterns, or a category with no
	// recorded accept/dismiss history.
	neutralPrior = 0.5
)

// History carries per-category acceptance rates from previously saved runs.
// The zero value means no history; every category falls back to the neutral
// prior.
type History struct {
	// AcceptanceRates maps category name to the fraction of that
	// category's past recommendations the user accepted.
	AcceptanceRates map[string]float64
}

// Rate returns the acceptance rate for a category, or the neutral prior
// when the category has no recorded decisions.
func (h History) Rate(category string) float64 {
	if rate, ok := h.AcceptanceRates[category]; ok {
		return rate
	}
	return neutralPrior
}

// Rank orders suggestions by composite score, highest first. The input is
// not modified; equal-score suggestions keep their input order, so repeated
// calls with the same arguments return the same ordering.
func Rank(suggestions []score.Suggestion, pc *score.ProjectContext, history History) []score.Suggestion {
	ranked := make([]score.Suggestion, len(suggestions))
	copy(ranked, suggestions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Composite(ranked[i], pc, history) > Composite(ranked[j], pc, history)
	})
	return ranked
}

// Composite computes the ranking score for a single suggestion.
func Composite(s score.Suggestion, pc *score.ProjectContext, history History) float64 {
	return weightConfidence*s.Confidence +
		weightRelevance*relevance(s, pc) +
		weightAcceptance*history.Rate(s.Category)
}

// relevance is the fraction of the suggestion's framework patterns that
// match signals detected in the project. Suggestions without patterns get
// the neutral prior rather than a penalty.
func relevance(s score.Suggestion, pc *score.ProjectContext) float64 {
	if len(s.Patterns) == 0 {
		return neutralPrior
	}
	matched := 0
	for _, p := range s.Patterns {
		if pc.HasSignal(p) {
			matched++
		}
	}
	return float64(matched) / float64(len(s.Patterns))
}

// Top returns at most n suggestions from an already ranked slice.
func Top(ranked []score.Suggestion, n int) []score.Suggestion {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
