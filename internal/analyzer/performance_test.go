package analyzer

import (
	"context"
	"fmt"
	"testing"
)

func TestPerformance_CachingDependencyShortcut(t *testing.T) {
	pc := newTestContext(t.TempDir(), "node", map[string]string{"redis": "4.6.0"})
	res := (&Performance{}).Run(context.Background(), pc)

	for _, check := range res.Checks {
		if check.Reason == "caching dependency" && check.Points == performanceCachingMax {
			return
		}
	}
	t.Errorf("redis dependency should satisfy the caching check; checks: %+v", res.Checks)
}

func TestPerformance_ConcurrencySignals(t *testing.T) {
	root := t.TempDir()
	scaffold(t, root, nil, map[string]string{
		"worker.go": "package worker\n\nfunc start() {\n\tgo func() {}()\n\tgo func() {}()\n\tch := make(chan int)\n\t_ = ch\n}\n",
	})

	pc := newTestContext(root, "go", nil)
	res := (&Performance{}).Run(context.Background(), pc)

	if res.Details["concurrency_signals"] == 0 {
		t.Error("goroutines and channels should register as concurrency signals")
	}
}

func TestPerformance_HeavyDependencyFootprint(t *testing.T) {
	deps := map[string]string{}
	for i := 0; i < 80; i++ {
		deps[fmt.Sprintf("pkg-%d", i)] = "1.0.0"
	}
	pc := newTestContext(t.TempDir(), "node", deps)
	res := (&Performance{}).Run(context.Background(), pc)

	found := false
	for _, issue := range res.Issues {
		if issue.Message == "Heavy dependency footprint" {
			found = true
		}
	}
	if !found {
		t.Errorf("80 dependencies should raise a footprint issue, got %+v", res.Issues)
	}
	if res.Details["dependency_count"] != 80 {
		t.Errorf("dependency_count = %v, want 80", res.Details["dependency_count"])
	}
}
