package analyzer

import (
	"context"
	"strings"
	"testing"
)

func TestCompleteness_CleanTree(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"app.go":       "package app\n\nfunc Run() {}\n",
		"CHANGELOG.md": "# Changelog\n",
		".gitignore":   "bin/\n",
	})

	pc := newTestContext(root, "go", nil)
	res := (&Completeness{}).Run(context.Background(), pc)

	if res.Score != CompletenessMax {
		t.Errorf("clean tree scored %v of %v; checks: %+v", res.Score, CompletenessMax, res.Checks)
	}
	if res.Details["todo_count"] != 0 {
		t.Errorf("todo_count = %v, want 0", res.Details["todo_count"])
	}
}

func TestCompleteness_TodoBacklog(t *testing.T) {
	root := t.TempDir()
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("// TODO fix this\nvar x = 1;\n")
	}
	scaffold(t, root, nil, map[string]string{"index.js": b.String()})

	pc := newTestContext(root, "node", nil)
	res := (&Completeness{}).Run(context.Background(), pc)

	if res.Details["todo_count"] != 20 {
		t.Errorf("todo_count = %v, want 20", res.Details["todo_count"])
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue.Message, "TODO/FIXME markers") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a TODO backlog issue, got %+v", res.Issues)
	}
}

func TestCompleteness_SwallowedErrors(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"index.js": "try { run(); } catch (e) {}\ntry { other(); } catch {}\n",
	})

	pc := newTestContext(root, "node", nil)
	res := (&Completeness{}).Run(context.Background(), pc)

	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue.Message, "empty error handlers") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an empty-handler issue, got %+v", res.Issues)
	}
}

func TestCompleteness_Placeholders(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"lib.py": "def handler():\n    raise NotImplementedError\n",
	})

	pc := newTestContext(root, "python", nil)
	res := (&Completeness{}).Run(context.Background(), pc)

	for _, check := range res.Checks {
		if check.Reason == "placeholder implementations" && check.Points == completenessPlaceholderMax {
			t.Error("placeholder stub should not receive full points")
		}
	}
}

func TestCompleteness_MissingGitignore(t *testing.T) {
	pc := newTestContext(t.TempDir(), "generic", nil)
	res := (&Completeness{}).Run(context.Background(), pc)

	found := false
	for _, issue := range res.Issues {
		if issue.Message == "No .gitignore" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a .gitignore issue, got %+v", res.Issues)
	}
}
