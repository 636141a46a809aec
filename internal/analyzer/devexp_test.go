package analyzer

import (
	"context"
	"testing"
)

func TestDevExp_FullyEquippedProject(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root,
		[]string{"docs", ".vscode"},
		map[string]string{
			"README.md":     "# App\n\n## Install\n\nnpm install\n\n## Usage\n\nRun it.\n",
			"Makefile":      "test:\n\tgo test ./...",
			".editorconfig": "root = true",
			"LICENSE":       "MIT",
		})

	pc := newTestContext(root, "go", nil)
	res := (&DevExp{}).Run(context.Background(), pc)

	if res.Score != DevExpMax {
		t.Errorf("fully equipped project scored %v of %v; checks: %+v", res.Score, DevExpMax, res.Checks)
	}
}

func TestDevExp_NpmScriptsCountAsTaskRunner(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"package.json": `{"name": "app", "scripts": {"test": "jest"}}`,
	})

	pc := newTestContext(root, "node", nil)
	res := (&DevExp{}).Run(context.Background(), pc)

	for _, check := range res.Checks {
		if check.Reason == "npm scripts" && check.Points == devexpTaskMax {
			return
		}
	}
	t.Errorf("npm scripts should satisfy the task runner check; checks: %+v", res.Checks)
}

func TestDevExp_MissingLicenseSuggestion(t *testing.T) {
	pc := newTestContext(t.TempDir(), "generic", nil)
	res := (&DevExp{}).Run(context.Background(), pc)

	for _, s := range res.Suggestions {
		if s.Impact == devexpLicenseMax && s.Category == "devexp" {
			return
		}
	}
	t.Errorf("missing license should yield a suggestion, got %+v", res.Suggestions)
}
