package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repograde/internal/collector"
	"github.com/blackwell-systems/repograde/internal/score"
)

// DevExp point budget. The sub-check maxima sum to DevExpMax.
const (
	DevExpMax        = 10.0
	devexpReadmeMax  = 3.0
	devexpTaskMax    = 2.0
	devexpEditorMax  = 2.0
	devexpDocsMax    = 2.0
	devexpLicenseMax = 1.0
)

// DevExp scores developer experience: README quality, task runners,
// editor/devcontainer config, documentation, and licensing.
type DevExp struct{}

func (a *DevExp) Name() string      { return "devexp" }
func (a *DevExp) MaxScore() float64 { return DevExpMax }

func (a *DevExp) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())

	a.checkReadmeQuality(sc, pc)
	a.checkTaskRunner(sc, pc)
	a.checkEditorConfig(sc, pc)
	a.checkDocs(sc, pc)
	a.checkLicense(sc, pc)

	return sc.Result()
}

func (a *DevExp) checkReadmeQuality(sc *score.Scorecard, pc *score.ProjectContext) {
	var content string
	for _, name := range []string{"README.md", "README.rst", "README"} {
		if c, ok := collector.ReadFile(filepath.Join(pc.Root, name)); ok {
			content = c
			break
		}
	}
	if content == "" {
		sc.AddScore(0, devexpReadmeMax, "readme quality")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Write a README with install and usage instructions",
			Impact:     devexpReadmeMax,
			Confidence: 0.95,
			Priority:   score.PriorityHigh,
		})
		return
	}

	points := 1.0
	lower := strings.ToLower(content)
	sections := strings.Count(content, "\n## ") + strings.Count(content, "\n# ")
	if sections >= 2 {
		points++
	}
	if strings.Contains(lower, "install") || strings.Contains(lower, "usage") || strings.Contains(lower, "getting started") {
		points++
	}
	sc.AddScore(points, devexpReadmeMax, "readme quality")
	if points < devexpReadmeMax {
		sc.AddSuggestion(score.Suggestion{
			Text:       "Expand the README with install and usage sections",
			Impact:     devexpReadmeMax - points,
			Confidence: 0.8,
			Priority:   score.PriorityMedium,
		})
	}
}

func (a *DevExp) checkTaskRunner(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range []string{"Makefile", "justfile", "Justfile", "Taskfile.yml", "Taskfile.yaml"} {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(devexpTaskMax, devexpTaskMax, "task runner")
			return
		}
	}
	// npm scripts serve the same purpose for Node projects.
	if pc.Type == "node" {
		if content, ok := collector.ReadFile(filepath.Join(pc.Root, "package.json")); ok && strings.Contains(content, `"scripts"`) {
			sc.AddScore(devexpTaskMax, devexpTaskMax, "npm scripts")
			return
		}
	}
	sc.AddScore(0, devexpTaskMax, "task runner")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Add a Makefile or task runner so common commands are one invocation away",
		Impact:     devexpTaskMax,
		Confidence: 0.7,
		Priority:   score.PriorityLow,
		Patterns:   []string{pc.Type},
	})
}

func (a *DevExp) checkEditorConfig(sc *score.Scorecard, pc *score.ProjectContext) {
	found := 0.0
	for _, name := range []string{".editorconfig", ".devcontainer", ".vscode"} {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			found++
		}
	}
	if found > devexpEditorMax {
		found = devexpEditorMax
	}
	sc.AddScore(found, devexpEditorMax, "editor and devcontainer config")
}

func (a *DevExp) checkDocs(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range []string{"docs", "doc"} {
		if info, err := os.Stat(filepath.Join(pc.Root, name)); err == nil && info.IsDir() {
			sc.AddScore(devexpDocsMax, devexpDocsMax, "documentation directory")
			return
		}
	}
	if _, err := os.Stat(filepath.Join(pc.Root, "CONTRIBUTING.md")); err == nil {
		sc.AddScore(1, devexpDocsMax, "contributing guide")
		return
	}
	sc.AddScore(0, devexpDocsMax, "documentation")
}

func (a *DevExp) checkLicense(sc *score.Scorecard, pc *score.ProjectContext) {
	for _, name := range []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "COPYING"} {
		if _, err := os.Stat(filepath.Join(pc.Root, name)); err == nil {
			sc.AddScore(devexpLicenseMax, devexpLicenseMax, "license")
			return
		}
	}
	sc.AddScore(0, devexpLicenseMax, "license")
	sc.AddSuggestion(score.Suggestion{
		Text:       "Add a LICENSE file to clarify usage terms",
		Impact:     devexpLicenseMax,
		Confidence: 0.9,
		Priority:   score.PriorityLow,
	})
}
