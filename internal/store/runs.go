package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/repograde/internal/score"
)

// SaveRun persists an overall result with its category scores and
// recommendations in one transaction and returns the new run ID.
func (db *DB) SaveRun(pc *score.ProjectContext, res *score.OverallResult) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (scored_at, root, project_type, score, max_score, percentage, grade)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), pc.Root, pc.Type,
		res.Score, res.MaxScore, res.Percentage, res.Grade,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for name, cat := range res.Categories {
		grade := score.GradeFor(score.Percentage(cat.Score, cat.MaxScore))
		if cat.Err != "" {
			grade = ""
		}
		if _, err := tx.Exec(
			`INSERT INTO category_scores (run_id, category, score, max_score, grade, error)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, name, cat.Score, cat.MaxScore, grade, cat.Err,
		); err != nil {
			return 0, fmt.Errorf("inserting category %s: %w", name, err)
		}
	}

	for _, rec := range res.Recommendations {
		if _, err := tx.Exec(
			`INSERT INTO recommendations (run_id, category, text, impact, confidence, priority, status)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.Category, rec.Text, rec.Impact, rec.Confidence, rec.Priority, StatusOpen,
		); err != nil {
			return 0, fmt.Errorf("inserting recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// GetLatestRun returns the most recent run, or nil if none exist.
func (db *DB) GetLatestRun() (*Run, error) {
	return db.GetRunN(1)
}

// GetRunN returns the Nth most recent run (1 = latest, 2 = previous, etc.).
func (db *DB) GetRunN(n int) (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, scored_at, root, project_type, score, max_score, percentage, grade
		 FROM runs ORDER BY id DESC LIMIT 1 OFFSET ?`,
		n-1,
	)
	return scanRun(row)
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, scored_at, root, project_type, score, max_score, percentage, grade
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var scoredAt string
		if err := rows.Scan(&r.ID, &scoredAt, &r.Root, &r.ProjectType,
			&r.Score, &r.MaxScore, &r.Percentage, &r.Grade); err != nil {
			return nil, err
		}
		r.ScoredAt, _ = time.Parse(time.RFC3339, scoredAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	var scoredAt string
	err := row.Scan(&r.ID, &scoredAt, &r.Root, &r.ProjectType,
		&r.Score, &r.MaxScore, &r.Percentage, &r.Grade)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.ScoredAt, _ = time.Parse(time.RFC3339, scoredAt)
	return &r, nil
}

// GetCategoryScores returns all category scores for a run.
func (db *DB) GetCategoryScores(runID int64) ([]CategoryScore, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_id, category, score, max_score, grade, error
		 FROM category_scores WHERE run_id = ? ORDER BY category`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scores []CategoryScore
	for rows.Next() {
		var cs CategoryScore
		var catErr sql.NullString
		if err := rows.Scan(&cs.ID, &cs.RunID, &cs.Category,
			&cs.Score, &cs.MaxScore, &cs.Grade, &catErr); err != nil {
			return nil, err
		}
		cs.Err = catErr.String
		scores = append(scores, cs)
	}
	return scores, rows.Err()
}

// GetOpenRecommendations returns all recommendations with status "open",
// most impactful first.
func (db *DB) GetOpenRecommendations() ([]Recommendation, error) {
	rows, err := db.conn.Query(
		`SELECT id, run_id, category, text, impact, confidence, priority, status
		 FROM recommendations WHERE status = 'open'
		 ORDER BY impact DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []Recommendation
	for rows.Next() {
		var rec Recommendation
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Category, &rec.Text,
			&rec.Impact, &rec.Confidence, &rec.Priority, &rec.Status); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SetRecommendationStatus marks a recommendation accepted or dismissed.
func (db *DB) SetRecommendationStatus(id int64, status string) error {
	if status != StatusAccepted && status != StatusDismissed && status != StatusOpen {
		return fmt.Errorf("invalid recommendation status %q", status)
	}
	result, err := db.conn.Exec("UPDATE recommendations SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("recommendation %d not found", id)
	}
	return nil
}

// AcceptanceRates returns, per category, the fraction of decided
// recommendations the user accepted. Categories with no accept or dismiss
// decisions are absent from the map.
func (db *DB) AcceptanceRates() (map[string]float64, error) {
	rows, err := db.conn.Query(
		`SELECT category,
		        SUM(CASE WHEN status = 'accepted' THEN 1 ELSE 0 END),
		        COUNT(*)
		 FROM recommendations
		 WHERE status IN ('accepted', 'dismissed')
		 GROUP BY category`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	rates := make(map[string]float64)
	for rows.Next() {
		var category string
		var accepted, decided int
		if err := rows.Scan(&category, &accepted, &decided); err != nil {
			return nil, err
		}
		if decided > 0 {
			rates[category] = float64(accepted) / float64(decided)
		}
	}
	return rates, rows.Err()
}

// DiffLatest compares the two most recent runs per category.
func (db *DB) DiffLatest() (*RunDiff, error) {
	current, err := db.GetRunN(1)
	if err != nil {
		return nil, err
	}
	previous, err := db.GetRunN(2)
	if err != nil {
		return nil, err
	}
	if current == nil || previous == nil {
		return nil, fmt.Errorf("need at least two saved runs to diff")
	}

	currScores, err := db.GetCategoryScores(current.ID)
	if err != nil {
		return nil, err
	}
	prevScores, err := db.GetCategoryScores(previous.ID)
	if err != nil {
		return nil, err
	}

	prevByCategory := make(map[string]float64, len(prevScores))
	for _, cs := range prevScores {
		prevByCategory[cs.Category] = cs.Score
	}

	diff := &RunDiff{Previous: previous, Current: current}
	for _, cs := range currScores {
		prev := prevByCategory[cs.Category]
		delta := cs.Score - prev
		direction := "unchanged"
		switch {
		case delta > 0:
			direction = "improved"
		case delta < 0:
			direction = "regressed"
		}
		diff.Deltas = append(diff.Deltas, CategoryDelta{
			Category:  cs.Category,
			Previous:  prev,
			Current:   cs.Score,
			Delta:     delta,
			Direction: direction,
		})
	}
	return diff, nil
}
