// Package detect infers a project's type from its manifest files and builds
// the immutable context the scoring engine consumes.
package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/repograde/internal/collector"
	"github.com/blackwell-systems/repograde/internal/score"
)

// indicator maps a manifest filename to a project-type tag. Ordered by
// specificity: the first manifest found wins.
var indicators = []struct {
	file string
	typ  string
}{
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"package.json", "node"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"setup.py", "python"},
}

// sourceExtensions maps project type to the extensions its content checks
// scan. The generic set is the union.
var sourceExtensions = map[string][]string{
	"go":     {".go"},
	"rust":   {".rs"},
	"node":   {".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
	"python": {".py"},
}

// ExtensionsFor returns the source file extensions for a project type.
func ExtensionsFor(typ string) []string {
	if exts, ok := sourceExtensions[typ]; ok {
		return exts
	}
	var all []string
	for _, exts := range sourceExtensions {
		all = append(all, exts...)
	}
	return all
}

// BuildContext detects the project type, parses its manifest, and assembles
// the ProjectContext for a run. A missing or unparsable manifest is not an
// error (analyzers report it as an Issue); a nonexistent root is.
func BuildContext(root string, opts score.Options) (*score.ProjectContext, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &score.ConfigError{Field: "root", Reason: fmt.Sprintf("cannot stat %s", abs)}
	}
	if !info.IsDir() {
		return nil, &score.ConfigError{Field: "root", Reason: fmt.Sprintf("%s is not a directory", abs)}
	}

	pc := &score.ProjectContext{
		Root:         abs,
		Type:         "generic",
		Dependencies: map[string]string{},
		Signals:      map[string]bool{},
		Options:      opts,
	}

	for _, ind := range indicators {
		path := filepath.Join(abs, ind.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		pc.Type = ind.typ
		pc.HasManifest = true
		if deps := parseManifest(path, ind.file); deps != nil {
			pc.Dependencies = deps
		}
		break
	}

	buildSignals(pc)
	return pc, nil
}

// buildSignals populates the lowercase tag set used for recommendation
// relevance: project type, dependency names, and file extensions present.
func buildSignals(pc *score.ProjectContext) {
	pc.Signals[pc.Type] = true
	for name := range pc.Dependencies {
		pc.Signals[name] = true
	}

	// Extensions observed in the tree. The walk is bounded by the sample
	// policy so signal building stays cheap on large trees.
	files := collector.Collect(pc.Root, nil)
	sampled := collector.SamplePolicy{Limit: 200}.Apply(files.Files)
	for _, f := range sampled {
		if ext := strings.ToLower(filepath.Ext(f)); ext != "" {
			pc.Signals[ext] = true
		}
	}
}
