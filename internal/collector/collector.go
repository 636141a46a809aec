// Package collector provides deterministic source file collection for the
// category analyzers.
package collector

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSampleLimit is how many files a content check scans when the run
// options do not override it.
const DefaultSampleLimit = 20

// skipDirs are dependency and build-output directories excluded from
// collection regardless of project type.
var skipDirs = map[string]bool{
	"node_modules":     true,
	"vendor":           true,
	"target":           true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"__pycache__":      true,
	"bower_components": true,
	"venv":             true,
	"coverage":         true,
}

// Result holds the collected file paths plus skip diagnostics.
type Result struct {
	// Files are the matching paths, in lexical walk order. The ordering is
	// stable for an unchanged tree, which sampling relies on.
	Files []string

	// SkippedDirs counts directories that could not be read and were
	// skipped rather than failing the collection.
	SkippedDirs int
}

// Collect walks root depth-first and returns every file whose extension is
// in the given set. Dot-prefixed and dependency directories are excluded.
// An unreadable subdirectory is skipped and counted, never an error.
// Extensions include the dot (".go", ".ts"); an empty set matches all files.
func Collect(root string, extensions []string) Result {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	var res Result
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.SkippedDirs++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return fs.SkipDir
			}
			return nil
		}
		if len(extSet) == 0 || extSet[strings.ToLower(filepath.Ext(path))] {
			res.Files = append(res.Files, path)
		}
		return nil
	})
	return res
}

// SamplePolicy is an explicit, injectable bounded-prefix sampling policy.
// Checks scan at most Limit files from the collector's stable ordering, so
// identical trees always sample identical inputs.
type SamplePolicy struct {
	Limit int
}

// Apply returns the bounded prefix of files.
func (p SamplePolicy) Apply(files []string) []string {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	if len(files) <= limit {
		return files
	}
	return files[:limit]
}

// ReadFile reads a file's content, reporting ok=false instead of an error
// when the file cannot be read. Checks skip unreadable files silently.
func ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
