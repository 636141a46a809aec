// Package score defines the scoring data model shared by the analyzers,
// the orchestrator, and the recommendation ranker.
package score

import "context"

// Priority levels for suggestions.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Options holds the caller-supplied knobs for a scoring run.
type Options struct {
	// Categories restricts the run to the named analyzers. Empty means all.
	Categories []string `json:"categories,omitempty"`

	// Verbose enables per-check reason reporting.
	Verbose bool `json:"verbose"`

	// IncludeDetails keeps the per-category detail maps in the result.
	IncludeDetails bool `json:"include_details"`

	// IncludeRecommendations enables recommendation ranking.
	IncludeRecommendations bool `json:"include_recommendations"`

	// SampleLimit bounds how many files a content check may scan.
	// Zero means the default limit.
	SampleLimit int `json:"sample_limit,omitempty"`

	// AuditDisabled skips the external vulnerability audit tool.
	AuditDisabled bool `json:"audit_disabled"`
}

// ProjectContext is the immutable snapshot of a project handed to every
// analyzer. It is built once per run and never mutated afterwards.
type ProjectContext struct {
	// Root is the absolute filesystem path to the project root.
	Root string `json:"root"`

	// Type is the detected project-type tag (e.g. "node", "go", "python").
	Type string `json:"type"`

	// Dependencies maps dependency name to declared version, merged across
	// the project's manifest sections.
	Dependencies map[string]string `json:"dependencies"`

	// HasManifest reports whether a recognized manifest file was found.
	HasManifest bool `json:"has_manifest"`

	// Signals is the set of lowercase context tags (project type, dependency
	// names, file extensions present) used for recommendation relevance.
	Signals map[string]bool `json:"-"`

	// Options are the caller-supplied run options.
	Options Options `json:"options"`
}

// HasSignal reports whether the given tag is present in the context signals.
func (pc *ProjectContext) HasSignal(tag string) bool {
	return pc.Signals[tag]
}

// HasDependency reports whether any dependency name contains the given
// substring (case-insensitive matching is the caller's responsibility;
// dependency names are stored lowercase).
func (pc *ProjectContext) HasDependency(name string) bool {
	_, ok := pc.Dependencies[name]
	return ok
}

// Issue is a deduction-worthy finding emitted by an analyzer.
type Issue struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Suggestion is an actionable improvement recommendation.
type Suggestion struct {
	// Category is the emitting analyzer's name.
	Category string `json:"category"`

	// Text is the human-readable recommendation.
	Text string `json:"text"`

	// Impact estimates how many points the project could gain.
	Impact float64 `json:"impact"`

	// Confidence is the analyzer's certainty in the finding (0-1).
	Confidence float64 `json:"confidence"`

	// Priority is one of the Priority* constants (lower is more urgent).
	Priority int `json:"priority"`

	// Patterns are context tags (dependency names, file extensions,
	// project types) the suggestion is relevant to. Used by the ranker.
	Patterns []string `json:"patterns,omitempty"`
}

// CheckScore records one sub-check's contribution, kept for verbose output.
type CheckScore struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
	Max    float64 `json:"max"`
}

// CategoryResult is one analyzer's complete output for a run.
type CategoryResult struct {
	Name        string         `json:"name"`
	Score       float64        `json:"score"`
	MaxScore    float64        `json:"max_score"`
	Issues      []Issue        `json:"issues,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	Checks      []CheckScore   `json:"checks,omitempty"`

	// Err is set when the analyzer failed; the score is zero in that case.
	Err string `json:"error,omitempty"`
}

// RunSummary partitions the analyzer set into completed and failed names
// and tallies per-category letter grades.
type RunSummary struct {
	Completed         []string       `json:"completed"`
	Failed            []string       `json:"failed"`
	GradeDistribution map[string]int `json:"grade_distribution"`
}

// OverallResult is the aggregated output of one scoring run.
type OverallResult struct {
	Score           float64                   `json:"score"`
	MaxScore        float64                   `json:"max_score"`
	Percentage      float64                   `json:"percentage"`
	Grade           string                    `json:"grade"`
	Categories      map[string]CategoryResult `json:"categories"`
	Summary         RunSummary                `json:"summary"`
	Recommendations []Suggestion              `json:"recommendations,omitempty"`
}

// Analyzer is the plugin contract every quality category implements.
// Run must build its CategoryResult exclusively through Scorecard primitives
// and must never mutate the ProjectContext.
type Analyzer interface {
	// Name returns the category name (e.g. "security").
	Name() string

	// MaxScore returns the category's fixed point cap. The sum of the
	// analyzer's sub-check maxima must equal this value.
	MaxScore() float64

	// Run executes the category's checks and returns the accumulated result.
	Run(ctx context.Context, pc *ProjectContext) CategoryResult
}
