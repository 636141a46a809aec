// Package engine runs the category analyzers and aggregates their results
// into a single scored, graded report.
package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Orchestrator fans the analyzer set out concurrently and joins their
// results. One analyzer failing, panicking, or timing out never affects
// its siblings.
type Orchestrator struct {
	analyzers []score.Analyzer
}

// NewOrchestrator wraps the given analyzer set.
func NewOrchestrator(analyzers []score.Analyzer) *Orchestrator {
	return &Orchestrator{analyzers: analyzers}
}

// RunAll executes every analyzer against the project context, each in its
// own goroutine, and aggregates the category results into an OverallResult.
// A cancelled context marks analyzers that have not finished as failed.
func (o *Orchestrator) RunAll(ctx context.Context, pc *score.ProjectContext) score.OverallResult {
	results := make([]score.CategoryResult, len(o.analyzers))

	var g errgroup.Group
	for i, a := range o.analyzers {
		g.Go(func() error {
			results[i] = runIsolated(ctx, a, pc)
			return nil
		})
	}
	g.Wait()

	return aggregate(results, pc.Options)
}

// RunOne executes a single analyzer with the same isolation guarantees as
// RunAll.
func (o *Orchestrator) RunOne(ctx context.Context, name string, pc *score.ProjectContext) (score.CategoryResult, bool) {
	for _, a := range o.analyzers {
		if a.Name() == name {
			return runIsolated(ctx, a, pc), true
		}
	}
	return score.CategoryResult{}, false
}

// runIsolated invokes one analyzer, converting panics and cancellation into
// a zero-score failed result instead of letting them escape.
func runIsolated(ctx context.Context, a score.Analyzer, pc *score.ProjectContext) (res score.CategoryResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failedResult(a, fmt.Sprintf("analyzer panicked: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedResult(a, fmt.Sprintf("run cancelled: %v", err))
	}
	return a.Run(ctx, pc)
}

func failedResult(a score.Analyzer, reason string) score.CategoryResult {
	return score.CategoryResult{
		Name:     a.Name(),
		Score:    0,
		MaxScore: a.MaxScore(),
		Err:      reason,
	}
}

// aggregate folds category results into the overall score, grade, and
// run summary. Details and per-check breakdowns are stripped unless the
// run options ask for them.
func aggregate(results []score.CategoryResult, opts score.Options) score.OverallResult {
	overall := score.OverallResult{
		Categories: make(map[string]score.CategoryResult, len(results)),
		Summary: score.RunSummary{
			GradeDistribution: make(map[string]int),
		},
	}

	for _, res := range results {
		if !opts.IncludeDetails {
			res.Details = nil
		}
		if !opts.Verbose {
			res.Checks = nil
		}

		overall.MaxScore += res.MaxScore
		if res.Err != "" {
			overall.Summary.Failed = append(overall.Summary.Failed, res.Name)
		} else {
			overall.Score += res.Score
			overall.Summary.Completed = append(overall.Summary.Completed, res.Name)
			grade := score.GradeFor(score.Percentage(res.Score, res.MaxScore))
			overall.Summary.GradeDistribution[grade]++
		}
		overall.Categories[res.Name] = res
	}

	sort.Strings(overall.Summary.Completed)
	sort.Strings(overall.Summary.Failed)

	overall.Percentage = score.Percentage(overall.Score, overall.MaxScore)
	overall.Grade = score.GradeFor(overall.Percentage)
	return overall
}
