package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blackwell-systems/repograde/internal/audit"
	"github.com/blackwell-systems/repograde/internal/score"
)

// Security point budget. The sub-check maxima sum to SecurityMax.
const (
	SecurityMax           = 15.0
	securityAuditMax      = 6.0
	securitySecretsMax    = 4.0
	securityValidationMax = 3.0
	securityDepsMax       = 2.0

	// securityAuditHeuristicCap bounds the fallback path so a tool-verified
	// clean project always outscores a heuristically-clean one.
	securityAuditHeuristicCap = 4.0

	// securityAuditBaseline is awarded when there are no dependencies to
	// audit at all.
	securityAuditBaseline = 3.0
)

// Security scores dependency health (via the external audit tool, with a
// heuristic fallback), hardcoded secrets, input validation, and security
// tooling adoption.
type Security struct {
	// AuditTimeout bounds the external audit tool. Zero uses the default.
	AuditTimeout time.Duration

	// auditFn is swapped in tests to avoid invoking real tools.
	auditFn func(ctx context.Context, projectType, root string, timeout time.Duration) audit.Report
}

func (a *Security) Name() string      { return "security" }
func (a *Security) MaxScore() float64 { return SecurityMax }

func (a *Security) Run(ctx context.Context, pc *score.ProjectContext) score.CategoryResult {
	sc := score.NewScorecard(a.Name(), a.MaxScore())
	files := sourceFiles(pc)

	// The audit subprocess is the one slow call in this analyzer; issue it
	// first and overlap it with the content scans.
	auditCh := a.startAudit(ctx, pc)

	a.checkSecrets(sc, pc, files.Files)
	a.checkInputValidation(sc, pc, files.Files)
	a.checkSecurityDeps(sc, pc)
	a.scoreAudit(sc, pc, <-auditCh)

	return sc.Result()
}

func (a *Security) startAudit(ctx context.Context, pc *score.ProjectContext) <-chan *audit.Report {
	ch := make(chan *audit.Report, 1)
	if len(pc.Dependencies) == 0 || pc.Options.AuditDisabled {
		ch <- nil
		return ch
	}
	run := a.auditFn
	if run == nil {
		run = audit.Run
	}
	go func() {
		rep := run(ctx, pc.Type, pc.Root, a.AuditTimeout)
		ch <- &rep
	}()
	return ch
}

// scoreAudit converts the audit report (or its absence) into the
// dependency-audit sub-score.
func (a *Security) scoreAudit(sc *score.Scorecard, pc *score.ProjectContext, rep *audit.Report) {
	if len(pc.Dependencies) == 0 {
		sc.AddScore(securityAuditBaseline, securityAuditMax, "dependency audit (no dependencies)")
		if !pc.HasManifest {
			sc.AddIssue("No manifest found", "cannot audit dependencies without a manifest")
		} else {
			sc.AddIssue("No external dependencies", "nothing to audit; baseline score applied")
		}
		return
	}
	if rep == nil {
		// Audit explicitly disabled: heuristic only.
		sc.AddScore(a.heuristicAudit(sc, pc), securityAuditMax, "dependency audit (heuristic, audit disabled)")
		return
	}

	if rep.Available {
		points := securityAuditMax - 1.5*float64(rep.Critical) - 0.5*float64(rep.Vulnerabilities-rep.Critical)
		if points < 0 {
			points = 0
		}
		sc.AddScore(points, securityAuditMax, "dependency audit ("+rep.Tool+")")
		sc.SetDetail("audit_vulnerabilities", rep.Vulnerabilities)
		if rep.Vulnerabilities > 0 {
			sc.AddIssue(
				fmt.Sprintf("%d known vulnerabilities in dependencies (%d high/critical)", rep.Vulnerabilities, rep.Critical),
				"reported by "+rep.Tool,
			)
			sc.AddSuggestion(score.Suggestion{
				Text:       "Upgrade vulnerable dependencies flagged by " + rep.Tool,
				Impact:     securityAuditMax - points,
				Confidence: 0.95,
				Priority:   score.PriorityCritical,
				Patterns:   []string{pc.Type},
			})
		}
		return
	}

	// Tool missing or output unusable: degrade to the heuristic path with an
	// explicit issue naming the missing tool.
	tool := rep.Tool
	if tool == "" {
		tool = audit.ToolFor(pc.Type)
	}
	if tool == "" {
		tool = "a vulnerability audit tool"
	}
	sc.AddIssue("Vulnerability analysis degraded", fmt.Sprintf("%s unavailable (%s); falling back to heuristic dependency checks", tool, rep.Reason))
	sc.AddScore(a.heuristicAudit(sc, pc), securityAuditMax, "dependency audit (heuristic fallback)")
}

// riskyVersionSpecs are manifest version constraints that defeat
// reproducible dependency resolution.
var riskyVersionSpecs = map[string]bool{"*": true, "latest": true, "": false}

// heuristicAudit is the keyword/pattern fallback over the manifest. Its
// ceiling is securityAuditHeuristicCap, strictly below the tool path.
func (a *Security) heuristicAudit(sc *score.Scorecard, pc *score.ProjectContext) float64 {
	points := securityAuditHeuristicCap
	wildcards := 0
	for name, version := range pc.Dependencies {
		if riskyVersionSpecs[strings.TrimSpace(version)] {
			wildcards++
			if wildcards <= 3 {
				sc.AddIssue("Unpinned dependency version", name+" uses a wildcard or latest version")
			}
		}
	}
	points -= 0.5 * float64(wildcards)
	if points < 0 {
		points = 0
	}
	sc.SetDetail("unpinned_dependencies", wildcards)
	return points
}

// secretPatterns flag hardcoded credentials in source content.
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|passwd|secret|api_?key|auth_?token|access_?key)\s*[:=]\s*["'][^"'\s]{6,}["']`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`-----BEGIN (RSA |EC |OPENSSH )?PRIVATE KEY-----`),
}

func (a *Security) checkSecrets(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	total := 0
	for _, re := range secretPatterns {
		matches, _ := countMatches(pc, files, re)
		total += matches
	}
	var points float64
	switch {
	case total == 0:
		points = securitySecretsMax
	case total <= 2:
		points = 2
	}
	sc.AddScore(points, securitySecretsMax, "hardcoded secrets scan")
	if total > 0 {
		sc.AddIssue(fmt.Sprintf("%d potential hardcoded secrets", total), "credentials belong in the environment or a secret manager, not source")
		sc.AddSuggestion(score.Suggestion{
			Text:       "Move hardcoded credentials into environment variables or a secret manager",
			Impact:     securitySecretsMax - points,
			Confidence: 0.75,
			Priority:   score.PriorityCritical,
			Patterns:   []string{pc.Type},
		})
	}
}

var validationPattern = regexp.MustCompile(`(?i)validat|sanitiz|escap(e|ing)|parameteriz|prepared?Statement|\bzod\b|\bjoi\b`)

func (a *Security) checkInputValidation(sc *score.Scorecard, pc *score.ProjectContext, files []string) {
	if hasAnyDependency(pc, "zod", "joi", "yup", "validator", "pydantic", "cerberus", "go-playground/validator") {
		sc.AddScore(securityValidationMax, securityValidationMax, "validation library")
		return
	}
	matches, _ := countMatches(pc, files, validationPattern)
	sc.AddScore(fractional(matches, 2, securityValidationMax), securityValidationMax, "input validation signals")
}

func (a *Security) checkSecurityDeps(sc *score.Scorecard, pc *score.ProjectContext) {
	found := 0.0
	for _, name := range []string{"helmet", "bcrypt", "argon2", "csurf", "jsonwebtoken", "cryptography", "golang.org/x/crypto", "rate-limit", "secure"} {
		if hasAnyDependency(pc, name) {
			found++
		}
	}
	if found > securityDepsMax {
		found = securityDepsMax
	}
	sc.AddScore(found, securityDepsMax, "security tooling adoption")
	if found == 0 && pc.Type == "node" && pc.HasDependency("express") {
		sc.AddSuggestion(score.Suggestion{
			Text:       "Add helmet and rate limiting middleware to the HTTP stack",
			Impact:     securityDepsMax,
			Confidence: 0.7,
			Priority:   score.PriorityMedium,
			Patterns:   []string{"node", "express"},
		})
	}
}
