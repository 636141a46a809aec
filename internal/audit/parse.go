package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
)

// parseNpmAudit reads the severity counters from `npm audit --json`.
func parseNpmAudit(out []byte) (total, critical int, ok bool) {
	var doc struct {
		Metadata struct {
			Vulnerabilities struct {
				Info     int `json:"info"`
				Low      int `json:"low"`
				Moderate int `json:"moderate"`
				High     int `json:"high"`
				Critical int `json:"critical"`
			} `json:"vulnerabilities"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		return 0, 0, false
	}
	v := doc.Metadata.Vulnerabilities
	total = v.Info + v.Low + v.Moderate + v.High + v.Critical
	critical = v.High + v.Critical
	return total, critical, true
}

// parsePipAudit reads `pip-audit -f json` output: a list of dependencies,
// each with a vulns array.
func parsePipAudit(out []byte) (total, critical int, ok bool) {
	var doc struct {
		Dependencies []struct {
			Vulns []struct {
				ID string `json:"id"`
			} `json:"vulns"`
		} `json:"dependencies"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		// Older pip-audit versions emit a bare array.
		var deps []struct {
			Vulns []struct {
				ID string `json:"id"`
			} `json:"vulns"`
		}
		if err := json.Unmarshal(out, &deps); err != nil {
			return 0, 0, false
		}
		for _, d := range deps {
			total += len(d.Vulns)
		}
		return total, total, true
	}
	for _, d := range doc.Dependencies {
		total += len(d.Vulns)
	}
	// pip-audit does not report severity; treat every finding as critical
	// so the score errs toward caution.
	return total, total, true
}

// parseGovulncheck reads the govulncheck JSON stream and counts finding
// messages that reached a call site.
func parseGovulncheck(out []byte) (total, critical int, ok bool) {
	if len(bytes.TrimSpace(out)) == 0 {
		return 0, 0, false
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	sawMessage := false
	for scanner.Scan() {
		line := scanner.Bytes()
		var msg struct {
			Finding *struct {
				OSV   string `json:"osv"`
				Trace []any  `json:"trace"`
			} `json:"finding"`
			Config *struct{} `json:"config"`
		}
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		if msg.Config != nil {
			sawMessage = true
		}
		if msg.Finding != nil {
			sawMessage = true
			total++
			if len(msg.Finding.Trace) > 0 {
				critical++
			}
		}
	}
	return total, critical, sawMessage
}

// parseCargoAudit reads `cargo audit --json` vulnerability counts.
func parseCargoAudit(out []byte) (total, critical int, ok bool) {
	var doc struct {
		Vulnerabilities struct {
			Count int `json:"count"`
			List  []struct {
				Advisory struct {
					Severity string `json:"severity"`
				} `json:"advisory"`
			} `json:"list"`
		} `json:"vulnerabilities"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		return 0, 0, false
	}
	total = doc.Vulnerabilities.Count
	for _, v := range doc.Vulnerabilities.List {
		if s := strings.ToLower(v.Advisory.Severity); s == "critical" || s == "high" {
			critical++
		}
	}
	return total, critical, true
}
