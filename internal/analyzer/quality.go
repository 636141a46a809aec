package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blackwell-systems/repograde/internal/collector"
	"github.com/blackwell-systems/repograde/internal/score"
)

// Quality point budget. The sub-check maxima sum to QualityMax.
const (
	QualityMax              = 20.0
	qualityLintMax          = 3.0
	qualityFormatMax        = 2.0
	qualityCommentsMax      = 5.0
	qualityErrorHandlingMax = 5.0
	qualityFileSizeMax      = 3.0
	qualityTypingMax        = 2.0
)

// longFileThreshold is the line count above which a file counts against the
// file-size check.
const longFileThreshold = 400

// Quality scores code hygiene: lint/format tooling, comment density, error
// handling discipline, file sizes, and strict typing configuration.
type Quality struct{}

func (a *Quality) Name() string      { return "quality" }
func (a *Quality) MaxScore() float64 { return QualityMax }

func (a *Quality) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())
	files := sourceFiles(pc)
	sc.SetDetail("source_files", len(files.Files))
	if files.SkippedDirs > 0 {
		sc.SetDetail("skipped_dirs", files.SkippedDirs)
	}

	a.checkLintConfig(sc, pc)
	a.checkFormatConfig(sc, pc)
	a.checkCommentDensity(sc, pc, files.Files)
	a.checkErrorHandling(sc, pc, files.Files)
	a.checkFileSizes(sc, pc, files.Files)
	a.checkStrictTyping(sc, pc)

	return sc.Result()
}

var lintConfigs = map[string][]string{
	"node":   {".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yml", "eslint.config.js", "eslint.config.mjs", "biome.json"},
	"go":     {".golangci.yml", ".golangci.yaml", ".golangci.toml"},
	"python": {"ruff.toml", ".ruff.toml", ".flake8", ".pylintrc", "setup.cfg"},
	"rust":   {"clippy.toml", ".clippy.toml"},
}

func (a *Quality) checkLintConfig(sc *score.Scorecard, pc *score.ProjectContext) {
	candidates := lintConfigs[pc.Type]
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(qualityLintMax, qualityLintMax, "lint configuration")
			return
		}
	}
	// Lint tooling may be declared as a dependency instead of a config file.
	if hasAnyDependency(pc, "eslint", "ruff", "pylint", "flake8", "biome") {
		sc.AddScore(2, qualityLintMax, "lint dependency without config file")
		return
	}
	sc.AddScore(0, qualityLintMax, "lint configuration")
	sc.AddIssue("No linter configured", "")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Add a linter configuration to enforce a consistent code standard",
		Impact:     qualityLintMax,
		Confidence: 0.85,
		Priority:   score.PriorityMedium,
		Patterns:   []string{pc.Type, "eslint", "ruff"},
	})
}

var formatConfigs = []string{".prettierrc", ".prettierrc.json", ".prettierrc.yml", "prettier.config.js", ".editorconfig", "rustfmt.toml", ".rustfmt.toml"}

func (a *Quality) checkFormatConfig(sc *score.Scorecard, pc *score.ProjectContext) {
	// gofmt ships with the toolchain, so Go projects get this for free.
	if pc.Type == "go" {
		sc.AddScore(qualityFormatMax, qualityFormatMax, "formatter (gofmt)")
		return
	}
	for _, name := range formatConfigs {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(qualityFormatMax, qualityFormatMax, "formatter configuration")
			return
		}
	}
	if hasAnyDependency(pc, "prettier", "black") {
		sc.AddScore(qualityFormatMax, qualityFormatMax, "formatter dependency")
		return
	}
	sc.AddScore(0, qualityFormatMax, "formatter configuration")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Adopt an automatic code formatter to remove style churn from reviews",
		Impact:     qualityFormatMax,
		Confidence: 0.8,
		Priority:   score.PriorityLow,
		Patterns:   []string{pc.Type, "prettier"},
	})
}

// commentMarkers maps project type to its line-comment prefix.
var commentMarkers = map[string]string{
	"go":     "//",
	"node":   "//",
	"rust":   "//",
	"python": "#",
}

func (a *Quality) checkCommentDensity(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	marker := commentMarkers[pc.Type]
	if marker == "" {
		marker = "//"
	}

	totalLines, commentLines := 0, 0
	for _, path := range sample(pc, files) {
		content, ok := collector.ReadFile(path)
		if !ok {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			totalLines++
			if strings.HasPrefix(trimmed, marker) {
				commentLines++
			}
		}
	}

	if totalLines == 0 {
		sc.AddScore(0, qualityCommentsMax, "comment density (no source files)")
		return
	}

	density := float64(commentLines) / float64(totalLines)
	sc.SetDetail("comment_density", density)
	var points float64
	switch {
	case density >= 0.10:
		points = qualityCommentsMax
	case density >= 0.05:
		points = 3
	case density >= 0.02:
		points = 1
	}
	sc.AddScore(points, qualityCommentsMax, "comment density")
	if density < 0.02 {
		sc.AddIssue("Very low comment density", "sampled files are almost entirely uncommented")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Document non-obvious invariants and public APIs with comments",
			Impact:     qualityCommentsMax,
			Confidence: 0.6,
			Priority:   score.PriorityLow,
			Patterns:   []string{pc.Type},
		})
	}
}

// errorHandlingPatterns maps project type to its idiomatic error handling
// signal.
var errorHandlingPatterns = map[string]*regexp.Regexp{
	"go":     regexp.MustCompile(`if err != nil`),
	"node":   regexp.MustCompile(`try\s*\{|\.catch\(|catch\s*\(`),
	"python": regexp.MustCompile(`(?m)^\s*(try:|except\s)`),
	"rust":   regexp.MustCompile(`Result<|\.unwrap_or|match .*\{|\?;`),
}

func (a *Quality) checkErrorHandling(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	re, ok := errorHandlingPatterns[pc.Type]
	if !ok {
		re = errorHandlingPatterns["node"]
	}
	matches, scanned := countMatches(pc, files, re)
	points := fractional(matches, 2, qualityErrorHandlingMax)
	sc.AddScore(points, qualityErrorHandlingMax, "error handling")
	if scanned > 0 && matches == 0 {
		sc.AddIssue("No error handling detected in sampled files", "")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Handle failure paths explicitly instead of letting errors propagate unchecked",
			Impact:     qualityErrorHandlingMax,
			Confidence: 0.65,
			Priority:   score.PriorityMedium,
			Patterns:   []string{pc.Type},
		})
	}
}

func (a *Quality) checkFileSizes(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	long := 0
	for _, path := range sample(pc, files) {
		content, ok := collector.ReadFile(path)
		if !ok {
			continue
		}
		if strings.Count(content, "\n") > longFileThreshold {
			long++
		}
	}
	var points float64
	switch {
	case long == 0:
		points = qualityFileSizeMax
	case long <= 2:
		points = 2
	default:
		points = 1
	}
	sc.AddScore(points, qualityFileSizeMax, "file sizes")
	if long > 2 {
		sc.AddIssue("Several very long source files", "files over 400 lines are hard to review; consider splitting them")
	}
}

func (a *Quality) checkStrictTyping(sc *score.Scorecard, pc *score.ProjectContext) {
	switch pc.Type {
	case "go", "rust":
		// Statically typed by construction.
		sc.AddScore(qualityTypingMax, qualityTypingMax, "strict typing (language)")
	case "node":
		if content, ok := collector.ReadFile(filepath.Join(pc.Root, "tsconfig.json")); ok {
			if strings.Contains(content, `"strict"`) {
				sc.AddScore(qualityTypingMax, qualityTypingMax, "strict TypeScript")
			} else {
				sc.AddScore(1, qualityTypingMax, "TypeScript without strict mode")
				sc.AddSuggestion(score.Suggestion{
					Text:       "Enable strict mode in tsconfig.json",
					Impact:     1,
					Confidence: 0.9,
					Priority:   score.PriorityMedium,
					Patterns:   []string{"node", ".ts"},
				})
			}
			return
		}
		sc.AddScore(0, qualityTypingMax, "strict typing")
	case "python":
		for _, name := range []string{"mypy.ini", ".mypy.ini"} {
			if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
				sc.AddScore(qualityTypingMax, qualityTypingMax, "mypy configuration")
				return
			}
		}
		if hasAnyDependency(pc, "mypy", "pyright") {
			sc.AddScore(qualityTypingMax, qualityTypingMax, "type checker dependency")
			return
		}
		sc.AddScore(0, qualityTypingMax, "strict typing")
	default:
		sc.AddScore(0, qualityTypingMax, "strict typing")
	}
}
