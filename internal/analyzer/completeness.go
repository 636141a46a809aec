package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Completeness point budget. The sub-check maxima sum to CompletenessMax.
const (
	CompletenessMax            = 15.0
	completenessTodoMax        = 4.0
	completenessEmptyCatchMax  = 3.0
	completenessPlaceholderMax = 4.0
	completenessChangelogMax   = 2.0
	completenessGitignoreMax   = 2.0
)

// Completeness scores how finished the project is: leftover TODOs,
// swallowed errors, unimplemented stubs, and release hygiene.
type Completeness struct{}

func (a *Completeness) Name() string      { return "completeness" }
func (a *Completeness) MaxScore() float64 { return CompletenessMax }

func (a *Completeness) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())
	files := sourceFiles(pc)

	a.checkTodoDensity(sc, pc, files.Files)
	a.checkEmptyHandlers(sc, pc, files.Files)
	a.checkPlaceholders(sc, pc, files.Files)
	a.checkChangelog(sc, pc)
	a.checkGitignore(sc, pc)

	return sc.Result()
}

var todoPattern = regexp.MustCompile(`\b(TODO|FIXME|XXX|HACK)\b`)

func (a *Completeness) checkTodoDensity(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	matches, _ := countMatches(pc, files, todoPattern)
	sc.SetDetail("todo_count", matches)
	var points float64
	switch {
	case matches == 0:
		points = completenessTodoMax
	case matches <= 5:
		points = 3
	case matches <= 15:
		points = 2
	default:
		points = 1
	}
	sc.AddScore(points, completenessTodoMax, "todo density")
	if matches > 15 {
		sc.AddIssue(fmt.Sprintf("%d TODO/FIXME markers in sampled files", matches), "large TODO backlogs usually hide unfinished features")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Triage TODO/FIXME markers into tracked issues or resolve them",
			Impact:     completenessTodoMax - points,
			Confidence: 0.7,
			Priority:   score.PriorityMedium,
			Patterns:   []string{pc.Type},
		})
	}
}

var emptyHandlerPatterns = map[string]*regexp.Regexp{
	"node":   regexp.MustCompile(`catch\s*(\([^)]*\))?\s*\{\s*\}`),
	"python": regexp.MustCompile(`(?m)except[^\n]*:\s*\n\s*pass\b`),
	"go":     regexp.MustCompile(`if err != nil\s*\{\s*\}`),
	"rust":   regexp.MustCompile(`\.ok\(\);|let _ = .*\?`),
}

func (a *Completeness) checkEmptyHandlers(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	re, ok := emptyHandlerPatterns[pc.Type]
	if !ok {
		re = emptyHandlerPatterns["node"]
	}
	matches, _ := countMatches(pc, files, re)
	var points float64
	switch {
	case matches == 0:
		points = completenessEmptyCatchMax
	case matches <= 2:
		points = 1
	}
	sc.AddScore(points, completenessEmptyCatchMax, "swallowed errors")
	if matches > 0 {
		sc.AddIssue(fmt.Sprintf("%d empty error handlers", matches), "silently swallowed errors hide failures in production")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Log or propagate errors instead of swallowing them in empty handlers",
			Impact:     completenessEmptyCatchMax - points,
			Confidence: 0.85,
			Priority:   score.PriorityHigh,
			Patterns:   []string{pc.Type},
		})
	}
}

var placeholderPattern = regexp.MustCompile(`(?i)not.?implemented|unimplemented!|todo!\(|raise NotImplementedError|panic\("(todo|unimplemented)`)

func (a *Completeness) checkPlaceholders(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	matches, _ := countMatches(pc, files, placeholderPattern)
	var points float64
	switch {
	case matches == 0:
		points = completenessPlaceholderMax
	case matches <= 2:
		points = 2
	}
	sc.AddScore(points, completenessPlaceholderMax, "placeholder implementations")
	if matches > 0 {
		sc.AddIssue(fmt.Sprintf("%d unimplemented placeholders", matches), "")
	}
}

func (a *Completeness) checkChangelog(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range []string{"CHANGELOG.md", "CHANGELOG", "CHANGES.md", "HISTORY.md"} {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(completenessChangelogMax, completenessChangelogMax, "changelog")
			return
		}
	}
	sc.AddScore(0, completenessChangelogMax, "changelog")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Keep a CHANGELOG so consumers can follow releases",
		Impact:     completenessChangelogMax,
		Confidence: 0.6,
		Priority:   score.PriorityLow,
	})
}

func (a *Completeness) checkGitignore(sc *score.Scorecard, pc *score.ProjectContext) {
	if _, err := os.Stat(filepath.Join(pc.Root, ".gitignore")); err == nil {
		sc.AddScore(completenessGitignoreMax, completenessGitignoreMax, "gitignore")
		return
	}
	sc.AddScore(0, completenessGitignoreMax, "gitignore")
	sc.AddIssue("No .gitignore", "build artifacts and local state may end up committed")
}
