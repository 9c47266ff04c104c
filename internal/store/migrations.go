package store

import "fmt"

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
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
		`CREATE TABLE IF NOT EXISTS assessments (
			id              TEXT PRIMARY KEY,
			tenant_id       TEXT NOT NULL,
			assessment_date TEXT NOT NULL,
			assessor        TEXT,
			overall_score   INTEGER NOT NULL,
			risk_level      TEXT NOT NULL,
			status          TEXT NOT NULL,
			last_modified   TEXT NOT NULL,
			comparison      TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS category_scores (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id  TEXT NOT NULL REFERENCES assessments(id),
			category       TEXT NOT NULL,
			score          INTEGER NOT NULL,
			data_collected BOOLEAN NOT NULL,
			metric_values  TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id TEXT NOT NULL REFERENCES assessments(id),
			rec_id        TEXT NOT NULL,
			category      TEXT NOT NULL,
			metric        TEXT NOT NULL,
			severity      TEXT NOT NULL,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL,
			impact        TEXT NOT NULL,
			remediation   TEXT NOT NULL,
			refs          TEXT,
			position      INTEGER NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_assessments_tenant ON assessments(tenant_id, assessment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_category_scores_assessment ON category_scores(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_assessment ON recommendations(assessment_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := db.conn.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		return err
	}
	return nil
}
