package detect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/repograde/internal/score"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildContext_NodeProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
		"name": "demo",
		"dependencies": {"Express": "^4.18.0", "react": "^18.0.0"},
		"devDependencies": {"jest": "^29.0.0"}
	}`)
	writeFile(t, filepath.Join(root, "src", "index.js"), "module.exports = {}")

	pc, err := BuildContext(root, score.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Type != "node" {
		t.Errorf("type = %q, want node", pc.Type)
	}
	if !pc.HasManifest {
		t.Error("HasManifest should be true")
	}
	if pc.Dependencies["express"] != "^4.18.0" {
		t.Errorf("dependency names must be lowercased: %v", pc.Dependencies)
	}
	if pc.Dependencies["jest"] != "^29.0.0" {
		t.Errorf("devDependencies must be merged: %v", pc.Dependencies)
	}
	if !pc.HasSignal("node") || !pc.HasSignal("react") || !pc.HasSignal(".js") {
		t.Errorf("missing context signals: %v", pc.Signals)
	}
}

func TestBuildContext_GoProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), `module example.com/demo

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	github.com/stretchr/testify v1.9.0 // indirect
)

require golang.org/x/sync v0.7.0
`)

	pc, err := BuildContext(root, score.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Type != "go" {
		t.Errorf("type = %q, want go", pc.Type)
	}
	if pc.Dependencies["github.com/spf13/cobra"] != "v1.8.0" {
		t.Errorf("require block not parsed: %v", pc.Dependencies)
	}
	if pc.Dependencies["golang.org/x/sync"] != "v0.7.0" {
		t.Errorf("single-line require not parsed: %v", pc.Dependencies)
	}
}

func TestBuildContext_PythonRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), `# deps
Django==4.2.0
requests>=2.31
-r extra.txt

flask
`)

	pc, err := BuildContext(root, score.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Type != "python" {
		t.Errorf("type = %q, want python", pc.Type)
	}
	want := map[string]string{"django": "4.2.0", "requests": "2.31", "flask": ""}
	for name, ver := range want {
		if pc.Dependencies[name] != ver {
			t.Errorf("dependency %q = %q, want %q (all: %v)", name, pc.Dependencies[name], ver, pc.Dependencies)
		}
	}
	if _, ok := pc.Dependencies["-r extra.txt"]; ok {
		t.Error("include directives must be skipped")
	}
}

func TestBuildContext_RustProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), `[package]
name = "demo"

[dependencies]
serde = "1.0"
tokio = { version = "1.35", features = ["full"] }

[dev-dependencies]
criterion = "0.5"
`)

	pc, err := BuildContext(root, score.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Type != "rust" {
		t.Errorf("type = %q, want rust", pc.Type)
	}
	if pc.Dependencies["serde"] != "1.0" {
		t.Errorf("serde = %q, want 1.0", pc.Dependencies["serde"])
	}
	if pc.Dependencies["tokio"] != "1.35" {
		t.Errorf("inline-table version not parsed: %q", pc.Dependencies["tokio"])
	}
	if _, ok := pc.Dependencies["criterion"]; !ok {
		t.Errorf("dev-dependencies must be included: %v", pc.Dependencies)
	}
}

func TestBuildContext_NoManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), "nothing here")

	pc, err := BuildContext(root, score.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if pc.Type != "generic" {
		t.Errorf("type = %q, want generic", pc.Type)
	}
	if pc.HasManifest {
		t.Error("HasManifest should be false")
	}
	if len(pc.Dependencies) != 0 {
		t.Errorf("dependencies should be empty: %v", pc.Dependencies)
	}
}

func TestBuildContext_MissingRoot(t *testing.T) {
	_, err := BuildContext(filepath.Join(t.TempDir(), "missing"), score.Options{})
	var cfgErr *score.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestExtensionsFor(t *testing.T) {
	if exts := ExtensionsFor("go"); len(exts) != 1 || exts[0] != ".go" {
		t.Errorf("go extensions = %v", exts)
	}
	if exts := ExtensionsFor("generic"); len(exts) < 4 {
		t.Errorf("generic should cover all known extensions, got %v", exts)
	}
}
