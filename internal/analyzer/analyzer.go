// Package analyzer implements the seven quality category analyzers. Each
// analyzer owns a fixed point budget, runs heuristic checks over the
// project's files and manifest, and reports through the score.Scorecard
// primitives. Analyzers read only the immutable ProjectContext and the
// filesystem, so they are safe to run concurrently.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/blackwell-systems/repograde/internal/collector"
	"github.com/blackwell-systems/repograde/internal/detect"
	"github.com/blackwell-systems/repograde/internal/score"
)

// Registry returns the seven category analyzers in canonical order.
func Registry() []score.Analyzer {
	return []score.Analyzer{
		&Structure{},
		&Quality{},
		&Performance{},
		&Security{},
		&Testing{},
		&DevExp{},
		&Completeness{},
	}
}

// sourceFiles collects the project's source files plus skip diagnostics.
func sourceFiles(pc *score.ProjectContext) collector.Result {
	return collector.Collect(pc.Root, detect.ExtensionsFor(pc.Type))
}

// sample applies the run's bounded-prefix sampling policy.
func sample(pc *score.ProjectContext, files []string) []string {
	return collector.SamplePolicy{Limit: pc.Options.SampleLimit}.Apply(files)
}

// countMatches scans the sampled files and returns the total number of
// pattern matches plus how many files were actually read. Unreadable files
// are skipped silently.
func countMatches(pc *score.ProjectContext, files []string, re *regexp.Regexp) (matches, scanned int) {
	for _, path := range sample(pc, files) {
		content, ok := collector.ReadFile(path)
		if !ok {
			continue
		}
		scanned++
		matches += len(re.FindAllStringIndex(content, -1))
	}
	return matches, scanned
}

// fractional converts a match count into a score capped at max: one point
// per perPoint matches.
func fractional(count int, perPoint, max float64) float64 {
	if perPoint <= 0 {
		return max
	}
	points := float64(count) / perPoint
	if points > max {
		return max
	}
	return points
}

// hasAnyDependency reports whether the context declares any of the named
// dependencies. Names are matched on the lowercase dependency key, with
// substring matching for scoped/namespaced packages.
func hasAnyDependency(pc *score.ProjectContext, names ...string) bool {
	for _, name := range names {
		if pc.HasDependency(name) {
			return true
		}
		for dep := range pc.Dependencies {
			if strings.Contains(dep, name) {
				return true
			}
		}
	}
	return false
}
