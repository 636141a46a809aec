// Package audit runs the package manager's vulnerability audit tool for a
// project and normalizes its output. The caller supplies a bounded timeout;
// a missing tool, timeout, or unparsable output degrades to an unavailable
// report, never an error.
package audit

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds the external tool invocation.
const DefaultTimeout = 30 * time.Second

// Report is the normalized audit outcome.
type Report struct {
	// Tool is the command the project type maps to ("npm", "pip-audit", ...).
	Tool string `json:"tool"`

	// Available reports whether structured tool output was obtained.
	// When false the security analyzer falls back to its heuristic path.
	Available bool `json:"available"`

	// Vulnerabilities is the total finding count.
	Vulnerabilities int `json:"vulnerabilities"`

	// Critical is the count of critical/high severity findings.
	Critical int `json:"critical"`

	// Reason explains why the report is unavailable, for diagnostics.
	Reason string `json:"reason,omitempty"`
}

// toolSpec describes the audit command for one project type.
type toolSpec struct {
	name  string
	args  []string
	parse func([]byte) (total, critical int, ok bool)
}

var tools = map[string]toolSpec{
	"node":   {name: "npm", args: []string{"audit", "--json"}, parse: parseNpmAudit},
	"python": {name: "pip-audit", args: []string{"-f", "json"}, parse: parsePipAudit},
	"go":     {name: "govulncheck", args: []string{"-json", "./..."}, parse: parseGovulncheck},
	"rust":   {name: "cargo-audit", args: []string{"audit", "--json"}, parse: parseCargoAudit},
}

// ToolFor returns the audit tool name for a project type, or "" when no
// tool is known.
func ToolFor(projectType string) string {
	return tools[projectType].name
}

// Run invokes the audit tool for the project type rooted at root. The
// context bounds the subprocess; a zero timeout uses DefaultTimeout.
func Run(ctx context.Context, projectType, root string, timeout time.Duration) Report {
	spec, ok := tools[projectType]
	if !ok {
		return Report{Reason: "no audit tool for project type"}
	}
	rep := Report{Tool: spec.name}

	if _, err := exec.LookPath(spec.name); err != nil {
		rep.Reason = "tool not installed"
		return rep
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.name, spec.args...)
	cmd.Dir = root
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// Audit tools exit non-zero when findings exist; the output is still
	// authoritative, so only the parse result decides availability.
	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		rep.Reason = "timed out"
		return rep
	}

	total, critical, parsed := spec.parse(stdout.Bytes())
	if !parsed {
		if err != nil {
			rep.Reason = "tool failed: " + err.Error()
		} else {
			rep.Reason = "unparsable tool output"
		}
		return rep
	}

	rep.Available = true
	rep.Vulnerabilities = total
	rep.Critical = critical
	return rep
}
