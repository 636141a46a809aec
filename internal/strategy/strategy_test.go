package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/repograde/internal/score"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func touch(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func ctxWithDeps(typ string, deps ...string) *score.ProjectContext {
	pc := &score.ProjectContext{
		Type:         typ,
		Dependencies: map[string]string{},
		Signals:      map[string]bool{},
	}
	for _, d := range deps {
		pc.Dependencies[d] = "1.0.0"
	}
	return pc
}

func TestSelect_FirstMatchWins(t *testing.T) {
	// A React project that also uses Express matches react first.
	pc := ctxWithDeps("node", "react", "express")
	s := Select(Default(), pc)
	if s.Name() != "react" {
		t.Errorf("selected %q, want react (registry order)", s.Name())
	}
}

func TestSelect_FallbackAlwaysApplies(t *testing.T) {
	pc := ctxWithDeps("generic")
	s := Select(Default(), pc)
	if s.Name() != "general" {
		t.Errorf("selected %q, want general fallback", s.Name())
	}
}

func TestSelect_GoProject(t *testing.T) {
	pc := ctxWithDeps("go")
	if s := Select(Default(), pc); s.Name() != "go" {
		t.Errorf("selected %q, want go", s.Name())
	}
}

func TestStrategies_ScoreBounded(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "src/components", "src/routes", "src/middleware", "src/controllers",
		"cmd", "internal", "pkg", "tests", "docs", "templates", "src/bin")
	touch(t, root, "manage.py", "src/main.rs", "src/lib.rs", "myapp/settings.py", "doc.go")

	pc := ctxWithDeps("node", "react", "express", "django", "redux")
	pc.Type = "go"

	for _, s := range Default() {
		res := s.Analyze(root, pc)
		if res.Score < 0 || res.Score > MaxScore {
			t.Errorf("%s: score %v out of [0, %v]", s.Name(), res.Score, MaxScore)
		}
	}
}

func TestReactStrategy_MissingComponents(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "src")

	res := (reactStrategy{}).Analyze(root, ctxWithDeps("node", "react"))
	if len(res.Issues) == 0 {
		t.Error("expected an issue for the missing component directory")
	}
	if res.Score != 1 {
		t.Errorf("score = %v, want 1 (src layout only)", res.Score)
	}
}

func TestGeneralStrategy_BareTree(t *testing.T) {
	res := (generalStrategy{}).Analyze(t.TempDir(), ctxWithDeps("generic"))
	if res.Score != 0 {
		t.Errorf("score = %v, want 0 for an empty tree", res.Score)
	}
	if len(res.Suggestions) == 0 {
		t.Error("expected a layout suggestion for a bare tree")
	}
}

func TestStrategies_Reusable(t *testing.T) {
	// Strategies hold no state: analyzing two different trees with the same
	// value must not leak results between runs.
	rich := t.TempDir()
	mkdirs(t, rich, "src/components", "src")
	bare := t.TempDir()

	s := reactStrategy{}
	pc := ctxWithDeps("node", "react", "zustand")

	first := s.Analyze(rich, pc)
	second := s.Analyze(bare, pc)
	if second.Score >= first.Score {
		t.Errorf("bare tree scored %v, rich tree %v; state may be leaking", second.Score, first.Score)
	}
}
