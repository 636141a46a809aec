package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/repograde/internal/analyzer"
	"github.com/blackwell-systems/repograde/internal/detect"
	"github.com/blackwell-systems/repograde/internal/rank"
	"github.com/blackwell-systems/repograde/internal/score"
)

// Scorer is the single entry point for scoring a project. It detects the
// project type, validates the run options, fans the analyzers out through
// the orchestrator, and ranks the resulting recommendations.
type Scorer struct {
	analyzers []score.Analyzer
	history   rank.History
}

// NewScorer returns a scorer over the full built-in analyzer registry.
func NewScorer() *Scorer {
	return &Scorer{analyzers: analyzer.Registry()}
}

// WithHistory attaches recommendation acceptance history from previous runs.
// The history only influences recommendation ordering, never scores.
func (s *Scorer) WithHistory(h rank.History) *Scorer {
	s.history = h
	return s
}

// WithAuditTimeout overrides the external audit tool timeout.
func (s *Scorer) WithAuditTimeout(d time.Duration) *Scorer {
	if d <= 0 {
		return s
	}
	for _, a := range s.analyzers {
		if sec, ok := a.(*analyzer.Security); ok {
			sec.AuditTimeout = d
		}
	}
	return s
}

// Score runs the full pipeline against the project at root. Option
// validation happens before any analyzer runs; an unknown category filter
// is a ConfigError, not a degraded run.
func (s *Scorer) Score(ctx context.Context, root string, opts score.Options) (*score.OverallResult, error) {
	selected, err := s.selectAnalyzers(opts.Categories)
	if err != nil {
		return nil, err
	}

	pc, err := detect.BuildContext(root, opts)
	if err != nil {
		return nil, fmt.Errorf("building project context: %w", err)
	}

	overall := NewOrchestrator(selected).RunAll(ctx, pc)

	if opts.IncludeRecommendations {
		var suggestions []score.Suggestion
		for _, name := range overall.Summary.Completed {
			suggestions = append(suggestions, overall.Categories[name].Suggestions...)
		}
		overall.Recommendations = rank.Rank(suggestions, pc, s.history)
	}

	return &overall, nil
}

// selectAnalyzers resolves the category filter against the registry. An
// empty filter selects everything; registry order is preserved either way.
func (s *Scorer) selectAnalyzers(categories []string) ([]score.Analyzer, error) {
	if len(categories) == 0 {
		return s.analyzers, nil
	}

	byName := make(map[string]score.Analyzer, len(s.analyzers))
	for _, a := range s.analyzers {
		byName[a.Name()] = a
	}

	wanted := make(map[string]bool, len(categories))
	for _, name := range categories {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := byName[name]; !ok {
			return nil, &score.ConfigError{
				Field:  "categories",
				Reason: fmt.Sprintf("unknown category %q", name),
			}
		}
		wanted[name] = true
	}

	var selected []score.Analyzer
	for _, a := range s.analyzers {
		if wanted[a.Name()] {
			selected = append(selected, a)
		}
	}
	return selected, nil
}
