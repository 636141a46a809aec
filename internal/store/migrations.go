package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			scored_at    TEXT NOT NULL,
			root         TEXT NOT NULL,
			project_type TEXT NOT NULL,
			score        REAL NOT NULL,
			max_score    REAL NOT NULL,
			percentage   REAL NOT NULL,
			grade        TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS category_scores (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    INTEGER NOT NULL REFERENCES runs(id),
			category  TEXT NOT NULL,
			score     REAL NOT NULL,
			max_score REAL NOT NULL,
			grade     TEXT NOT NULL,
			error     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL REFERENCES runs(id),
			category   TEXT NOT NULL,
			text       TEXT NOT NULL,
			impact     REAL NOT NULL,
			confidence REAL NOT NULL,
			priority   INTEGER NOT NULL,
			status     TEXT NOT NULL DEFAULT 'open'
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_category_scores_run ON category_scores(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_run ON recommendations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_status ON recommendations(status)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
