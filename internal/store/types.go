// Package store provides SQLite persistence for scoring runs and
// recommendation decisions.
package store

import "time"

// Recommendation status values.
const (
	StatusOpen      = "open"
	StatusAccepted  = "accepted"
	StatusDismissed = "dismissed"
)

// Run is a saved point-in-time scoring result for one project.
type Run struct {
	ID          int64     `json:"id"`
	ScoredAt    time.Time `json:"scored_at"`
	Root        string    `json:"root"`
	ProjectType string    `json:"project_type"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	Percentage  float64   `json:"percentage"`
	Grade       string    `json:"grade"`
}

// CategoryScore is one category's contribution within a saved run.
type CategoryScore struct {
	ID       int64   `json:"id"`
	RunID    int64   `json:"run_id"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Grade    string  `json:"grade"`
	Err      string  `json:"error,omitempty"`
}

// Recommendation is a persisted suggestion whose status tracks the user's
// accept/dismiss decision.
type Recommendation struct {
	ID         int64   `json:"id"`
	RunID      int64   `json:"run_id"`
	Category   string  `json:"category"`
	Text       string  `json:"text"`
	Impact     float64 `json:"impact"`
	Confidence float64 `json:"confidence"`
	Priority   int     `json:"priority"`
	Status     string  `json:"status"`
}

// CategoryDelta is the change in one category between two runs.
type CategoryDelta struct {
	Category  string  `json:"category"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}

// RunDiff compares the latest run against the one before it.
type RunDiff struct {
	Previous *Run            `json:"previous"`
	Current  *Run            `json:"current"`
	Deltas   []CategoryDelta `json:"deltas"`
}
