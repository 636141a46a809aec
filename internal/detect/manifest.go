package detect

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
)

// parseManifest dispatches on the manifest kind and returns the merged
// dependency map (lowercase names). Parse failures return nil; the caller
// treats that the same as an empty manifest.
func parseManifest(path, kind string) map[string]string {
	switch kind {
	case "package.json":
		return parsePackageJSON(path)
	case "go.mod":
		return parseGoMod(path)
	case "requirements.txt":
		return parseRequirements(path)
	case "pyproject.toml":
		return parsePyproject(path)
	case "Cargo.toml":
		return parseCargoToml(path)
	default:
		return nil
	}
}

func parsePackageJSON(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	deps := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, ver := range manifest.Dependencies {
		deps[strings.ToLower(name)] = ver
	}
	for name, ver := range manifest.DevDependencies {
		deps[strings.ToLower(name)] = ver
	}
	return deps
}

func parseGoMod(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	deps := map[string]string{}
	inRequire := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "require (":
			inRequire = true
		case inRequire && line == ")":
			inRequire = false
		case inRequire || strings.HasPrefix(line, "require "):
			line = strings.TrimPrefix(line, "require ")
			line = strings.TrimSuffix(line, "// indirect")
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				deps[strings.ToLower(fields[0])] = fields[1]
			}
		}
	}
	return deps
}

// requirementSeparators are the PEP 508 version operators, longest first so
// "==" wins over ">".
var requirementSeparators = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

func parseRequirements(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	deps := map[string]string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		name, version := line, ""
		for _, sep := range requirementSeparators {
			if idx := strings.Index(line, sep); idx >= 0 {
				name = line[:idx]
				version = line[idx+len(sep):]
				break
			}
		}
		name = strings.TrimSpace(name)
		if name != "" {
			deps[strings.ToLower(name)] = strings.TrimSpace(version)
		}
	}
	return deps
}

// parsePyproject reads dependency lines from [project] and
// [tool.poetry.dependencies] sections. Line-based on purpose: a full TOML
// parse buys nothing for name/version extraction.
func parsePyproject(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	deps := map[string]string{}
	section := ""
	inDepsList := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			inDepsList = false
			continue
		}
		switch section {
		case "project":
			if strings.HasPrefix(line, "dependencies") {
				inDepsList = true
				if _, rest, ok := strings.Cut(line, "["); ok {
					line = rest
				} else {
					continue
				}
			}
			if inDepsList {
				for _, part := range strings.Split(line, ",") {
					entry := strings.Trim(part, ` "[]=,`)
					if entry == "" {
						continue
					}
					name, version := entry, ""
					for _, sep := range requirementSeparators {
						if idx := strings.Index(entry, sep); idx >= 0 {
							name = entry[:idx]
							version = strings.Trim(entry[idx+len(sep):], `=`)
							break
						}
					}
					deps[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(version)
				}
				if strings.Contains(line, "]") {
					inDepsList = false
				}
			}
		case "tool.poetry.dependencies":
			if name, version, ok := strings.Cut(line, "="); ok {
				name = strings.ToLower(strings.TrimSpace(name))
				if name != "" && name != "python" {
					deps[name] = strings.Trim(strings.TrimSpace(version), `"^~`)
				}
			}
		}
	}
	delete(deps, "")
	return deps
}

func parseCargoToml(path string) map[string]string {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	deps := map[string]string{}
	section := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}
		if section != "dependencies" && section != "dev-dependencies" {
			continue
		}
		name, rest, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		rest = strings.TrimSpace(rest)
		version := strings.Trim(rest, `"`)
		if strings.HasPrefix(rest, "{") {
			// Inline table form: version = "..." inside braces.
			version = ""
			if idx := strings.Index(rest, `version`); idx >= 0 {
				tail := rest[idx:]
				if _, v, ok := strings.Cut(tail, "="); ok {
					version = strings.Trim(strings.TrimSpace(strings.TrimSuffix(strings.Split(v, ",")[0], "}")), `" `)
				}
			}
		}
		if name != "" {
			deps[name] = version
		}
	}
	return deps
}
