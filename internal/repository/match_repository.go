package repository

import (
	"context"
	"time"

	"github.com/Laibah-Shahid/ats/internal/database"

	"github.com/google/uuid"
)

// MatchRecord is the persisted score for one (job, resume) pair. The pair is
// unique in the store; the row id exists for administrative tooling.
type MatchRecord struct {
	ID               string
	JobID            string
	ResumeID         string
	MatchPercentage  int
	MatchExplanation string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type MatchUpsert struct {
	JobID            string
	ResumeID         string
	MatchPercentage  int
	MatchExplanation string
	UpdatedAt        time.Time
}

type MatchRepository interface {
	ListByJobID(ctx context.Context, jobID string) ([]MatchRecord, error)
	ListByResumeID(ctx context.Context, resumeID string) ([]MatchRecord, error)
	// Upsert writes the score for a pair as one atomic conditional write.
	// Concurrent writers for the same pair race with last-write-wins.
	Upsert(ctx context.Context, m MatchUpsert) error
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, job_id, resume_id, match_percentage,
	COALESCE(match_explanation, ''), created_at, updated_at`

func (r *PostgresMatchRepository) ListByJobID(ctx context.Context, jobID string) ([]MatchRecord, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM job_resume_matches
		 WHERE job_id = $1
		 ORDER BY match_percentage DESC`,
		jobID,
	)
}

func (r *PostgresMatchRepository) ListByResumeID(ctx context.Context, resumeID string) ([]MatchRecord, error) {
	return r.list(ctx,
		`SELECT `+matchColumns+` FROM job_resume_matches
		 WHERE resume_id = $1
		 ORDER BY match_percentage DESC`,
		resumeID,
	)
}

func (r *PostgresMatchRepository) Upsert(ctx context.Context, m MatchUpsert) error {
	if m.JobID == "" || m.ResumeID == "" {
		return nil
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO job_resume_matches (id, job_id, resume_id, match_percentage, match_explanation, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (job_id, resume_id) DO UPDATE SET
			match_percentage = EXCLUDED.match_percentage,
			match_explanation = EXCLUDED.match_explanation,
			updated_at = EXCLUDED.updated_at`,
		uuid.NewString(),
		m.JobID,
		m.ResumeID,
		m.MatchPercentage,
		m.MatchExplanation,
		m.UpdatedAt,
	)
	return err
}

func (r *PostgresMatchRepository) list(ctx context.Context, query string, arg any) ([]MatchRecord, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchRecord, 0)
	for rows.Next() {
		var m MatchRecord
		if err := rows.Scan(
			&m.ID, &m.JobID, &m.ResumeID, &m.MatchPercentage,
			&m.MatchExplanation, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
