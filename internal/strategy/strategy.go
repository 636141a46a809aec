// Package strategy holds the framework-specific structure scoring variants
// used by the structure analyzer. Strategies are selected by predicate
// match from an ordered registry; a general fallback always applies.
package strategy

import (
	"os"
	"path/filepath"

	"github.com/blackwell-systems/repograde/internal/score"
)

// MaxScore is the point cap every strategy's Analyze result is bounded by.
const MaxScore = 3.0

// PatternResult is a strategy's output, folded into the structure
// analyzer's CategoryResult.
type PatternResult struct {
	Patterns    []string `json:"patterns,omitempty"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Score       float64  `json:"score"`
}

// award adds points up to the strategy cap and records the pattern name.
func (r *PatternResult) award(points float64, pattern string) {
	if r.Score+points > MaxScore {
		points = MaxScore - r.Score
	}
	r.Score += points
	r.Patterns = append(r.Patterns, pattern)
}

// Strategy scores framework-specific structural conventions. Strategies
// hold no state and are safely reusable across runs.
type Strategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string

	// Applies reports whether this strategy matches the project's
	// type and dependency signals.
	Applies(pc *score.ProjectContext) bool

	// Analyze scores the project's structure against the framework's
	// conventions, bounded by MaxScore.
	Analyze(root string, pc *score.ProjectContext) PatternResult
}

// Default returns the ordered strategy registry. Order matters: the first
// matching strategy wins, and the general fallback is last.
func Default() []Strategy {
	return []Strategy{
		reactStrategy{},
		expressStrategy{},
		djangoStrategy{},
		goStrategy{},
		rustStrategy{},
		generalStrategy{},
	}
}

// Select returns the first strategy whose predicate matches. The registry
// ends with a catch-all, so Select never returns nil for Default().
func Select(strategies []Strategy, pc *score.ProjectContext) Strategy {
	for _, s := range strategies {
		if s.Applies(pc) {
			return s
		}
	}
	return generalStrategy{}
}

// dirExists reports whether any of the given paths (relative to root) is a
// directory.
func dirExists(root string, names ...string) bool {
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(root, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// collectNames gathers file names from the root and one level of
// subdirectories, enough to spot framework marker files without a full walk.
func collectNames(root string) map[string]bool {
	names := map[string]bool{}
	entries, err := os.ReadDir(root)
	if err != nil {
		return names
	}
	for _, e := range entries {
		names[e.Name()] = true
		if e.IsDir() {
			sub, err := os.ReadDir(filepath.Join(root, e.Name()))
			if err != nil {
				continue
			}
			for _, s := range sub {
				names[s.Name()] = true
			}
		}
	}
	return names
}

// fileExists reports whether any of the given paths (relative to root) is a
// regular file.
func fileExists(root string, names ...string) bool {
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(root, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
