package audit

import (
	"context"
	"testing"
)

func TestRun_UnknownProjectType(t *testing.T) {
	rep := Run(context.Background(), "generic", t.TempDir(), 0)
	if rep.Available {
		t.Error("no tool exists for generic projects; report must be unavailable")
	}
	if rep.Tool != "" {
		t.Errorf("tool = %q, want empty", rep.Tool)
	}
}

func TestToolFor(t *testing.T) {
	if got := ToolFor("node"); got != "npm" {
		t.Errorf("ToolFor(node) = %q, want npm", got)
	}
	if got := ToolFor("generic"); got != "" {
		t.Errorf("ToolFor(generic) = %q, want empty", got)
	}
}

func TestParseNpmAudit(t *testing.T) {
	out := []byte(`{
		"auditReportVersion": 2,
		"metadata": {
			"vulnerabilities": {"info": 1, "low": 2, "moderate": 0, "high": 3, "critical": 1}
		}
	}`)

	total, critical, ok := parseNpmAudit(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if total != 7 || critical != 4 {
		t.Errorf("total/critical = %d/%d, want 7/4", total, critical)
	}
}

func TestParseNpmAudit_Clean(t *testing.T) {
	out := []byte(`{"metadata": {"vulnerabilities": {"info": 0, "low": 0, "moderate": 0, "high": 0, "critical": 0}}}`)
	total, critical, ok := parseNpmAudit(out)
	if !ok || total != 0 || critical != 0 {
		t.Errorf("clean audit = (%d, %d, %v), want (0, 0, true)", total, critical, ok)
	}
}

func TestParseNpmAudit_Garbage(t *testing.T) {
	if _, _, ok := parseNpmAudit([]byte("npm ERR! network failure")); ok {
		t.Error("garbage output must not parse")
	}
}

func TestParsePipAudit(t *testing.T) {
	out := []byte(`{"dependencies": [
		{"name": "django", "vulns": [{"id": "PYSEC-1"}, {"id": "PYSEC-2"}]},
		{"name": "requests", "vulns": []}
	]}`)

	total, critical, ok := parsePipAudit(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if total != 2 || critical != 2 {
		t.Errorf("total/critical = %d/%d, want 2/2", total, critical)
	}
}

func TestParseGovulncheck(t *testing.T) {
	out := []byte(`{"config": {"protocol_version": "v1.0.0"}}
{"progress": {"message": "Scanning..."}}
{"finding": {"osv": "GO-2024-0001", "trace": [{"module": "m"}]}}
{"finding": {"osv": "GO-2024-0002", "trace": []}}
`)

	total, critical, ok := parseGovulncheck(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if total != 2 || critical != 1 {
		t.Errorf("total/critical = %d/%d, want 2/1", total, critical)
	}
}

func TestParseGovulncheck_Empty(t *testing.T) {
	if _, _, ok := parseGovulncheck(nil); ok {
		t.Error("empty output must not parse")
	}
}

func TestParseCargoAudit(t *testing.T) {
	out := []byte(`{"vulnerabilities": {"count": 2, "list": [
		{"advisory": {"severity": "critical"}},
		{"advisory": {"severity": "low"}}
	]}}`)

	total, critical, ok := parseCargoAudit(out)
	if !ok || total != 2 || critical != 1 {
		t.Errorf("cargo audit = (%d, %d, %v), want (2, 1, true)", total, critical, ok)
	}
}
