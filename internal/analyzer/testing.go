package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Testing point budget. The sub-check maxima sum to TestingMax.
const (
	TestingMax          = 15.0
	testingFilesMax     = 6.0
	testingFrameworkMax = 3.0
	testingCIMax        = 3.0
	testingCoverageMax  = 3.0
)

// Testing scores the project's automated test investment: test file ratio,
// test framework adoption, CI configuration, and coverage tooling.
type Testing struct{}

func (a *Testing) Name() string      { return "testing" }
func (a *Testing) MaxScore() float64 { return TestingMax }

func (a *Testing) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())
	files := sourceFiles(pc)

	testCount := a.checkTestFiles(sc, pc, files.Files)
	a.checkFramework(sc, pc, testCount)
	a.checkCI(sc, pc)
	a.checkCoverage(sc, pc)

	return sc.Result()
}

// isTestFile recognizes test files across the supported project types.
func isTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	dir := strings.ToLower(filepath.Dir(path))
	switch {
	case strings.HasSuffix(base, "_test.go"):
		return true
	case strings.Contains(base, ".test.") || strings.Contains(base, ".spec."):
		return true
	case strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"):
		return true
	case strings.HasSuffix(base, "_test.py"):
		return true
	case strings.Contains(dir, "__tests__") || strings.HasSuffix(dir, string(filepath.Separator)+"tests") || strings.HasSuffix(dir, string(filepath.Separator)+"test"):
		return true
	}
	return false
}

func (a *Testing) checkTestFiles(sc *score.Scorecard, pc *score.ProjectContext, files []string) int {
	testCount, sourceCount := 0, 0
	for _, f := range files {
		if isTestFile(f) {
			testCount++
		} else {
			sourceCount++
		}
	}
	sc.SetDetail("test_files", testCount)

	if testCount == 0 {
		sc.AddScore(0, testingFilesMax, "test files")
		sc.AddIssue("No test files found", "")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Add automated tests for the core code paths",
			Impact:     testingFilesMax,
			Confidence: 0.95,
			Priority:   score.PriorityCritical,
			Patterns:   []string{pc.Type},
		})
		return 0
	}

	ratio := 1.0
	if sourceCount > 0 {
		ratio = float64(testCount) / float64(sourceCount)
	}
	var points float64
	switch {
	case ratio >= 0.5:
		points = testingFilesMax
	case ratio >= 0.3:
		points = 4
	case ratio >= 0.1:
		points = 2
	default:
		points = 1
	}
	sc.AddScore(points, testingFilesMax, "test file ratio")
	if ratio < 0.1 {
		sc.AddIssue("Sparse test coverage", "very few test files relative to source files")
	}
	return testCount
}

func (a *Testing) checkFramework(sc *score.Scorecard, pc *score.ProjectContext, testCount int) {
	// Go's testing package ships with the toolchain; having tests is
	// equivalent to having a framework.
	if pc.Type == "go" && testCount > 0 {
		sc.AddScore(testingFrameworkMax, testingFrameworkMax, "test framework (go test)")
		return
	}
	if hasAnyDependency(pc, "jest", "mocha", "vitest", "ava", "pytest", "unittest2", "nose", "testify", "rstest") {
		sc.AddScore(testingFrameworkMax, testingFrameworkMax, "test framework dependency")
		return
	}
	if pc.Type == "rust" && testCount > 0 {
		sc.AddScore(testingFrameworkMax, testingFrameworkMax, "test framework (cargo test)")
		return
	}
	sc.AddScore(0, testingFrameworkMax, "test framework")
	if testCount > 0 {
		sc.AddIssue("Tests exist but no test framework is declared", "")
	}
}

var ciConfigs = []string{
	".github/workflows",
	".gitlab-ci.yml",
	".circleci/config.yml",
	"Jenkinsfile",
	".travis.yml",
	"azure-pipelines.yml",
}

func (a *Testing) checkCI(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range ciConfigs {
		path := filepath.Join(pc.Root, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			// Workflow directories count only when they contain a workflow.
			entries, err := os.ReadDir(path)
			if err != nil || len(entries) == 0 {
				continue
			}
		}
		sc.AddScore(testingCIMax, testingCIMax, "continuous integration")
		return
	}
	sc.AddScore(0, testingCIMax, "continuous integration")
	sc.AddIssue("No CI configuration found", "")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Run the test suite in CI on every push",
		Impact:     testingCIMax,
		Confidence: 0.9,
		Priority:   score.PriorityHigh,
		Patterns:   []string{pc.Type},
	})
}

var coverageConfigs = []string{"codecov.yml", ".codecov.yml", ".coveragerc", ".nycrc", ".nycrc.json", "tarpaulin.toml"}

func (a *Testing) checkCoverage(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range coverageConfigs {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(testingCoverageMax, testingCoverageMax, "coverage tooling")
			return
		}
	}
	if hasAnyDependency(pc, "nyc", "c8", "coverage", "pytest-cov", "istanbul") {
		sc.AddScore(testingCoverageMax, testingCoverageMax, "coverage dependency")
		return
	}
	sc.AddScore(0, testingCoverageMax, "coverage tooling")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Track test coverage so gaps are visible",
		Impact:     testingCoverageMax,
		Confidence: 0.6,
		Priority:   score.PriorityLow,
		Patterns:   []string{pc.Type},
	})
}
