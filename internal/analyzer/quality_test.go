package analyzer

import (
	"context"
	"strings"
	"testing"
)

func TestQuality_GoProjectWithLintConfig(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		".golangci.yml": "linters:\n  enable: [govet]",
		"main.go": `// Package main runs the app.
package main

// run executes the main loop.
func run() error {
	if err := setup(); err != nil {
		return err
	}
	return nil
}
`,
	})

	pc := newTestContext(root, "go", map[string]string{"github.com/spf13/cobra": "v1.8.0"})
	res := (&Quality{}).Run(context.Background(), pc)

	var lintPoints, typingPoints float64 = -1, -1
	for _, check := range res.Checks {
		if strings.Contains(check.Reason, "lint") {
			lintPoints = check.Points
		}
		if strings.Contains(check.Reason, "typing") {
			typingPoints = check.Points
		}
	}
	if lintPoints != qualityLintMax {
		t.Errorf("lint points = %v, want %v", lintPoints, qualityLintMax)
	}
	if typingPoints != qualityTypingMax {
		t.Errorf("Go projects are statically typed; typing points = %v, want %v", typingPoints, qualityTypingMax)
	}
}

func TestQuality_UncommentedCodeFlagged(t *testing.T) {
	root := t.TempDir()
	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("const x" + string(rune('a'+i%26)) + " = 1;\n")
	}
	scaffold(t, root, nil, map[string]string{"index.js": b.String()})

	pc := newTestContext(root, "node", nil)
	res := (&Quality{}).Run(context.Background(), pc)

	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue.Message, "comment density") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a comment density issue, got %+v", res.Issues)
	}
}

func TestQuality_NoSourceFiles(t *testing.T) {
	pc := newTestContext(t.TempDir(), "node", nil)
	res := (&Quality{}).Run(context.Background(), pc)
	if res.Score < 0 || res.Score > res.MaxScore {
		t.Errorf("score %v outside bounds on an empty tree", res.Score)
	}
}

func TestQuality_StrictTypeScript(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
	})

	pc := newTestContext(root, "node", nil)
	res := (&Quality{}).Run(context.Background(), pc)

	for _, check := range res.Checks {
		if check.Reason == "strict TypeScript" && check.Points == qualityTypingMax {
			return
		}
	}
	t.Errorf("expected full points for strict tsconfig; checks: %+v", res.Checks)
}
