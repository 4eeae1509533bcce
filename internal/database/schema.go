package database

import "context"

// Schema for the job board. Jobs and resumes are written by the board itself;
// job_resume_matches is owned by the match engine. The (job_id, resume_id)
// unique constraint backs the upsert-on-conflict write path.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL DEFAULT '',
		company          TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		requirements     TEXT NOT NULL DEFAULT '',
		skills           TEXT[] NOT NULL DEFAULT '{}',
		salary_min       BIGINT,
		salary_max       BIGINT,
		location         TEXT NOT NULL DEFAULT '',
		job_type         TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		user_id          TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL DEFAULT '',
		full_name  TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		skills     TEXT[] NOT NULL DEFAULT '{}',
		experience TEXT NOT NULL DEFAULT '',
		education  TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS job_resume_matches (
		id                TEXT PRIMARY KEY,
		job_id            TEXT NOT NULL,
		resume_id         TEXT NOT NULL,
		match_percentage  INT NOT NULL DEFAULT 0,
		match_explanation TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (job_id, resume_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_resume_matches_job_id ON job_resume_matches (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_job_resume_matches_resume_id ON job_resume_matches (resume_id)`,
}

// EnsureSchema creates the tables the service needs. Statements are
// idempotent so this runs unconditionally at startup.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
