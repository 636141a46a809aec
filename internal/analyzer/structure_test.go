package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func scaffold(t *testing.T, root string, dirs []string, files map[string]string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestStructure_MissingManifest(t *testing.T) {
	root := t.TempDir()
	pc := newTestContext(root, "generic", nil)
	pc.HasManifest = false

	res := (&Structure{}).Run(context.Background(), pc)

	found := false
	for _, issue := range res.Issues {
		if issue.Message == "No manifest found" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'No manifest found' issue, got %+v", res.Issues)
	}
	if res.Score < 0 || res.Score > res.MaxScore {
		t.Errorf("score %v outside bounds", res.Score)
	}
}

func TestStructure_WellOrganizedGoProject(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root,
		[]string{"cmd/app", "internal/core", "docs"},
		map[string]string{
			"README.md":  strings.Repeat("# App\n\nA useful tool.\n", 20),
			".gitignore": "bin/",
			"Makefile":   "build:\n\tgo build ./...",
			"main.go":    "package main",
		})

	pc := newTestContext(root, "go", map[string]string{"github.com/spf13/cobra": "v1.8.0"})
	res := (&Structure{}).Run(context.Background(), pc)

	if res.Score < 12 {
		t.Errorf("well-organized project scored %v of %v; checks: %+v", res.Score, res.MaxScore, res.Checks)
	}
	if res.Details["strategy"] != "go" {
		t.Errorf("strategy detail = %v, want go", res.Details["strategy"])
	}
}

func TestStructure_BareTreeIssues(t *testing.T) {
	pc := newTestContext(t.TempDir(), "generic", nil)
	pc.HasManifest = false

	res := (&Structure{}).Run(context.Background(), pc)
	if res.Score != 0 {
		t.Errorf("bare tree scored %v, want 0; checks: %+v", res.Score, res.Checks)
	}
	if len(res.Suggestions) == 0 {
		t.Error("bare tree should produce suggestions")
	}
	for _, s := range res.Suggestions {
		if s.Category != "structure" {
			t.Errorf("suggestion category = %q, want structure", s.Category)
		}
	}
}

func TestStructure_Deterministic(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, []string{"src"}, map[string]string{"README.md": "# hi", "index.js": "x"})
	pc := newTestContext(root, "node", map[string]string{"react": "18.0.0"})

	a := &Structure{}
	first := a.Run(context.Background(), pc)
	second := a.Run(context.Background(), pc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}
