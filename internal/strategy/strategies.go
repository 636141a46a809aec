package strategy

import "github.com/blackwell-systems/repograde/internal/score"

// reactStrategy scores React component-tree conventions.
type reactStrategy struct{}

func (reactStrategy) Name() string { return "react" }

func (reactStrategy) Applies(pc *score.ProjectContext) bool {
	return pc.HasDependency("react")
}

func (reactStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if dirExists(root, "src/components", "components", "app/components") {
		res.award(1, "component directory")
	} else {
		res.Issues = append(res.Issues, "No dedicated component directory")
		res.Suggestions = append(res.Suggestions, "Group React components under src/components/")
	}
	if dirExists(root, "src") {
		res.award(1, "src layout")
	}
	if pc.HasDependency("redux") || pc.HasDependency("@reduxjs/toolkit") ||
		pc.HasDependency("zustand") || pc.HasDependency("mobx") || pc.HasDependency("jotai") {
		res.award(1, "state management")
	} else {
		res.Suggestions = append(res.Suggestions, "Consider a state management library for non-trivial component trees")
	}
	return res
}

// expressStrategy scores Express route/middleware separation.
type expressStrategy struct{}

func (expressStrategy) Name() string { return "express" }

func (expressStrategy) Applies(pc *score.ProjectContext) bool {
	return pc.HasDependency("express") || pc.HasDependency("fastify") || pc.HasDependency("koa")
}

func (expressStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if dirExists(root, "routes", "src/routes", "api") {
		res.award(1, "route directory")
	} else {
		res.Issues = append(res.Issues, "No route directory")
		res.Suggestions = append(res.Suggestions, "Split route handlers into a routes/ directory")
	}
	if dirExists(root, "middleware", "src/middleware", "middlewares") {
		res.award(1, "middleware directory")
	}
	if dirExists(root, "controllers", "src/controllers", "handlers", "src/handlers") {
		res.award(1, "controller separation")
	} else {
		res.Suggestions = append(res.Suggestions, "Separate business logic into controllers or handlers")
	}
	return res
}

// djangoStrategy scores Django project layout conventions.
type djangoStrategy struct{}

func (djangoStrategy) Name() string { return "django" }

func (djangoStrategy) Applies(pc *score.ProjectContext) bool {
	return pc.HasDependency("django")
}

func (djangoStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if fileExists(root, "manage.py") {
		res.award(1, "manage.py entry point")
	} else {
		res.Issues = append(res.Issues, "No manage.py found")
	}
	files := collectNames(root)
	if files["settings.py"] || dirExists(root, "config") {
		res.award(1, "settings module")
	}
	if dirExists(root, "templates") || files["urls.py"] {
		res.award(1, "templates/urls layout")
	}
	return res
}

// goStrategy scores the standard Go module layout.
type goStrategy struct{}

func (goStrategy) Name() string { return "go" }

func (goStrategy) Applies(pc *score.ProjectContext) bool {
	return pc.Type == "go"
}

func (goStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if dirExists(root, "cmd") {
		res.award(1, "cmd layout")
	}
	if dirExists(root, "internal") {
		res.award(1, "internal packages")
	} else {
		res.Suggestions = append(res.Suggestions, "Keep non-exported packages under internal/")
	}
	if dirExists(root, "pkg") || fileExists(root, "doc.go") || dirExists(root, "internal") && dirExists(root, "cmd") {
		res.award(1, "package separation")
	}
	return res
}

// rustStrategy scores Cargo crate layout conventions.
type rustStrategy struct{}

func (rustStrategy) Name() string { return "rust" }

func (rustStrategy) Applies(pc *score.ProjectContext) bool {
	return pc.Type == "rust"
}

func (rustStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if fileExists(root, "src/main.rs", "src/lib.rs") {
		res.award(1, "crate entry point")
	} else {
		res.Issues = append(res.Issues, "No src/main.rs or src/lib.rs")
	}
	if dirExists(root, "tests") {
		res.award(1, "integration tests directory")
	}
	if dirExists(root, "src/bin") || fileExists(root, "src/main.rs") && fileExists(root, "src/lib.rs") {
		res.award(1, "bin/lib separation")
	}
	return res
}

// generalStrategy is the catch-all fallback; it always applies.
type generalStrategy struct{}

func (generalStrategy) Name() string { return "general" }

func (generalStrategy) Applies(pc *score.ProjectContext) bool { return true }

func (generalStrategy) Analyze(root string, pc *score.ProjectContext) PatternResult {
	var res PatternResult
	if dirExists(root, "src", "lib", "app", "internal") {
		res.award(1, "source directory")
	} else {
		res.Issues = append(res.Issues, "No dedicated source directory")
		res.Suggestions = append(res.Suggestions, "Move source files into a src/ or lib/ directory")
	}
	if dirExists(root, "tests", "test", "spec") {
		res.award(1, "test directory")
	}
	if dirExists(root, "docs", "doc") || fileExists(root, "CONTRIBUTING.md") {
		res.award(1, "documentation layout")
	}
	return res
}
