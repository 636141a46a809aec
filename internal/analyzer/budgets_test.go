package analyzer

import (
	"context"
	"testing"

	"github.com/blackwell-systems/repograde/internal/score"
)

// Each analyzer's sub-check maxima must sum to its declared category cap.
// This pins the canonical weight table.
func TestBudgets_SumToCategoryCap(t *testing.T) {
	tests := []struct {
		name string
		cap  float64
		sum  float64
	}{
		{"structure", StructureMax, structureStrategyMax + structureLayoutMax + structureReadmeMax + structureManifestMax + structureConfigMax + structureEntryPointMax},
		{"quality", QualityMax, qualityLintMax + qualityFormatMax + qualityCommentsMax + qualityErrorHandlingMax + qualityFileSizeMax + qualityTypingMax},
		{"performance", PerformanceMax, performanceConcurrentMax + performanceCachingMax + performanceStreamingMax + performanceDepWeightMax},
		{"security", SecurityMax, securityAuditMax + securitySecretsMax + securityValidationMax + securityDepsMax},
		{"testing", TestingMax, testingFilesMax + testingFrameworkMax + testingCIMax + testingCoverageMax},
		{"devexp", DevExpMax, devexpReadmeMax + devexpTaskMax + devexpEditorMax + devexpDocsMax + devexpLicenseMax},
		{"completeness", CompletenessMax, completenessTodoMax + completenessEmptyCatchMax + completenessPlaceholderMax + completenessChangelogMax + completenessGitignoreMax},
	}

	for _, tc := range tests {
		if tc.sum != tc.cap {
			t.Errorf("%s: sub-check maxima sum to %v, cap is %v", tc.name, tc.sum, tc.cap)
		}
	}
}

func TestBudgets_TotalIsOneHundred(t *testing.T) {
	total := 0.0
	for _, a := range Registry() {
		total += a.MaxScore()
	}
	if total != 100 {
		t.Errorf("registry caps sum to %v, want 100", total)
	}
}

func TestRegistry_NamesAndHeuristicFallbackCeiling(t *testing.T) {
	want := []string{"structure", "quality", "performance", "security", "testing", "devexp", "completeness"}
	reg := Registry()
	if len(reg) != len(want) {
		t.Fatalf("registry has %d analyzers, want %d", len(reg), len(want))
	}
	for i, a := range reg {
		if a.Name() != want[i] {
			t.Errorf("registry[%d] = %q, want %q", i, a.Name(), want[i])
		}
	}

	if securityAuditHeuristicCap >= securityAuditMax {
		t.Error("heuristic fallback ceiling must be strictly below the tool path maximum")
	}
}

// Every analyzer must keep its score within [0, max] on both empty and
// well-equipped trees.
func TestAnalyzers_ScoreBounds(t *testing.T) {
	contexts := []*score.ProjectContext{
		newTestContext(t.TempDir(), "generic", nil),
		newTestContext(t.TempDir(), "node", map[string]string{"express": "4.18.0"}),
	}

	for _, pc := range contexts {
		pc.Options.AuditDisabled = true
		for _, a := range Registry() {
			res := a.Run(context.Background(), pc)
			if res.Score < 0 || res.Score > res.MaxScore {
				t.Errorf("%s on %s project: score %v outside [0, %v]", a.Name(), pc.Type, res.Score, res.MaxScore)
			}
			if res.MaxScore != a.MaxScore() {
				t.Errorf("%s: result max %v != declared max %v", a.Name(), res.MaxScore, a.MaxScore())
			}
		}
	}
}

func newTestContext(root, typ string, deps map[string]string) *score.ProjectContext {
	if deps == nil {
		deps = map[string]string{}
	}
	signals := map[string]bool{typ: true}
	for name := range deps {
		signals[name] = true
	}
	return &score.ProjectContext{
		Root:         root,
		Type:         typ,
		Dependencies: deps,
		HasManifest:  len(deps) > 0,
		Signals:      signals,
	}
}
