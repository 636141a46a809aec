package analyzer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/repograde/internal/score"
	"github.com/blackwell-systems/repograde/internal/strategy"
)

// Structure point budget. The sub-check maxima sum to StructureMax.
const (
	StructureMax           = 15.0
	structureStrategyMax   = strategy.MaxScore
	structureLayoutMax     = 4.0
	structureReadmeMax     = 2.0
	structureManifestMax   = 2.0
	structureConfigMax     = 2.0
	structureEntryPointMax = 2.0
)

// Structure scores project layout: framework conventions (via the strategy
// selector), directory organization, and the presence of the files every
// project root should carry.
type Structure struct{}

func (a *Structure) Name() string      { return "structure" }
func (a *Structure) MaxScore() float64 { return StructureMax }

func (a *Structure) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())

	a.checkFrameworkPatterns(sc, pc)
	a.checkLayout(sc, pc)
	a.checkReadme(sc, pc)
	a.checkManifest(sc, pc)
	a.checkConfigFiles(sc, pc)
	a.checkEntryPoint(sc, pc)

	return sc.Result()
}

// checkFrameworkPatterns consults the strategy registry and folds the
// selected strategy's PatternResult into the category result.
func (a *Structure) checkFrameworkPatterns(sc *score.Scorecard, pc *score.ProjectContext) {
	s := strategy.Select(strategy.Default(), pc)
	res := s.Analyze(pc.Root, pc)

	sc.AddScore(res.Score, structureStrategyMax, "framework patterns ("+s.Name()+")")
	sc.SetDetail("strategy", s.Name())
	if len(res.Patterns) > 0 {
		sc.SetDetail("patterns", res.Patterns)
	}
	for _, issue := range res.Issues {
		sc.AddIssue(issue, "reported by the "+s.Name()+" strategy")
	}
	for _, text := range res.Suggestions {
		sc.AddSuggestion(score.Suggestion{
			Text:       text,
			Impact:     1,
			Confidence: 0.7,
			Priority:   score.PriorityMedium,
			Patterns:   []string{pc.Type, s.Name()},
		})
	}
}

var layoutDirs = []string{"src", "lib", "app", "internal", "cmd", "pkg", "tests", "test", "docs"}

func (a *Structure) checkLayout(sc *score.Scorecard, pc *score.ProjectContext) {
	found := 0
	for _, dir := range layoutDirs {
		if info, err := os.Stat(filepath.Join(pc.Root, dir)); err == nil && info.IsDir() {
			found++
		}
	}
	points := float64(found)
	if points > structureLayoutMax {
		points = structureLayoutMax
	}
	sc.AddScore(points, structureLayoutMax, "directory layout")
	if found == 0 {
		sc.AddIssue("No conventional top-level directories", "expected one of src/, lib/, internal/, tests/, docs/")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Organize source files into conventional directories (src/, tests/, docs/)",
			Impact:     structureLayoutMax,
			Confidence: 0.8,
			Priority:   score.PriorityHigh,
			Patterns:   []string{pc.Type},
		})
	}
}

func (a *Structure) checkReadme(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range []string{"README.md", "README.rst", "README"} {
		if info, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			points := 1.0
			if info.Size() > 300 {
				points = structureReadmeMax
			}
			sc.AddScore(points, structureReadmeMax, "readme")
			return
		}
	}
	sc.AddScore(0, structureReadmeMax, "readme")
	sc.AddIssue("No README found", "")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Add a README describing what the project does and how to run it",
		Impact:     structureReadmeMax,
		Confidence: 0.95,
		Priority:   score.PriorityHigh,
	})
}

func (a *Structure) checkManifest(sc *score.Scorecard, pc *score.ProjectContext) {
	if pc.HasManifest {
		sc.AddScore(structureManifestMax, structureManifestMax, "manifest")
		return
	}
	sc.AddScore(0, structureManifestMax, "manifest")
	sc.AddIssue("No manifest found", "no package.json, go.mod, pyproject.toml, or Cargo.toml at the project root")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Declare dependencies in a package manifest so tooling can resolve them",
		Impact:     structureManifestMax,
		Confidence: 0.9,
		Priority:   score.PriorityHigh,
	})
}

var rootConfigFiles = []string{".gitignore", ".editorconfig", "Makefile", "Dockerfile", "docker-compose.yml", ".env.example"}

func (a *Structure) checkConfigFiles(sc *score.Scorecard, pc *score.ProjectContext) {
	found := 0
	for _, name := range rootConfigFiles {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			found++
		}
	}
	points := float64(found)
	if points > structureConfigMax {
		points = structureConfigMax
	}
	sc.AddScore(points, structureConfigMax, "project config files")
}

// entryPoints maps project type to conventional entry point locations.
var entryPoints = map[string][]string{
	"go":     {"main.go", "cmd"},
	"node":   {"index.js", "src/index.js", "src/index.ts", "src/main.ts", "server.js", "app.js"},
	"python": {"main.py", "app.py", "manage.py", "src/main.py", "__main__.py"},
	"rust":   {"src/main.rs", "src/lib.rs"},
}

func (a *Structure) checkEntryPoint(sc *score.Scorecard, pc *score.ProjectContext) {
	candidates, ok := entryPoints[pc.Type]
	if !ok {
		// Unknown type: any source file counts as an entry point.
		if len(sourceFiles(pc).Files) > 0 {
			sc.AddScore(structureEntryPointMax, structureEntryPointMax, "entry point")
		} else {
			sc.AddScore(0, structureEntryPointMax, "entry point")
		}
		return
	}
	for _, name := range candidates {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(structureEntryPointMax, structureEntryPointMax, "entry point")
			return
		}
	}
	sc.AddScore(0, structureEntryPointMax, "entry point")
	sc.AddIssue("No conventional entry point", "expected one of: "+candidates[0])
}
