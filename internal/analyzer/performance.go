package analyzer

import (
	"context"
	"regexp"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Performance point budget. The sub-check maxima sum to PerformanceMax.
const (
	PerformanceMax           = 10.0
	performanceConcurrentMax = 3.0
	performanceCachingMax    = 3.0
	performanceStreamingMax  = 2.0
	performanceDepWeightMax  = 2.0
)

// Performance scores efficiency signals: concurrency/async usage, caching,
// streaming/pagination patterns, and dependency footprint.
type Performance struct{}

func (a *Performance) Name() string      { return "performance" }
func (a *Performance) MaxScore() float64 { return PerformanceMax }

func (a *Performance) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())
	files := sourceFiles(pc)

	a.checkConcurrency(sc, pc, files.Files)
	a.checkCaching(sc, pc, files.Files)
	a.checkStreaming(sc, pc, files.Files)
	a.checkDependencyWeight(sc, pc)

	return sc.Result()
}

var concurrencyPatterns = map[string]*regexp.Regexp{
	"go":     regexp.MustCompile(`go func|sync\.WaitGroup|errgroup|make\(chan `),
	"node":   regexp.MustCompile(`async |await |Promise\.(all|allSettled|race)`),
	"python": regexp.MustCompile(`async def|asyncio|concurrent\.futures|multiprocessing`),
	"rust":   regexp.MustCompile(`async fn|tokio::|rayon::|std::thread`),
}

func (a *Performance) checkConcurrency(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	re, ok := concurrencyPatterns[pc.Type]
	if !ok {
		re = concurrencyPatterns["node"]
	}
	matches, _ := countMatches(pc, files, re)
	sc.AddScore(fractional(matches, 3, performanceConcurrentMax), performanceConcurrentMax, "concurrency usage")
	sc.SetDetail("concurrency_signals", matches)
}

var cachingPattern = regexp.MustCompile(`(?i)\bcache[ds]?\b|memoiz|\blru\b`)

func (a *Performance) checkCaching(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	if hasAnyDependency(pc, "redis", "memcached", "lru-cache", "node-cache", "cachetools", "groupcache", "ristretto") {
		sc.AddScore(performanceCachingMax, performanceCachingMax, "caching dependency")
		return
	}
	matches, _ := countMatches(pc, files, cachingPattern)
	points := fractional(matches, 2, performanceCachingMax)
	sc.AddScore(points, performanceCachingMax, "caching signals")
	if points == 0 {
		sc.AddSuggestion(score.Suggestion{
			Text:       "Cache repeated expensive computations or remote lookups",
			Impact:     performanceCachingMax,
			Confidence: 0.4,
			Priority:   score.PriorityLow,
			Patterns:   []string{pc.Type, "redis"},
		})
	}
}

var streamingPattern = regexp.MustCompile(`(?i)\bstream|paginat|\bcursor\b|\bbatch|\bchunk`)

func (a *Performance) checkStreaming(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	matches, _ := countMatches(pc, files, streamingPattern)
	sc.AddScore(fractional(matches, 3, performanceStreamingMax), performanceStreamingMax, "streaming and pagination")
}

func (a *Performance) checkDependencyWeight(sc *score.Scorecard, pc *score.ProjectContext) {
	count := len(pc.Dependencies)
	sc.SetDetail("dependency_count", count)
	var points float64
	switch {
	case count <= 30:
		points = performanceDepWeightMax
	case count <= 60:
		points = 1
	}
	sc.AddScore(points, performanceDepWeightMax, "dependency footprint")
	if count > 60 {
		sc.AddIssue("Heavy dependency footprint", "install and startup cost grows with every dependency")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Prune unused dependencies from the manifest",
			Impact:     performanceDepWeightMax,
			Confidence: 0.5,
			Priority:   score.PriorityLow,
			Patterns:   []string{pc.Type},
		})
	}
}
