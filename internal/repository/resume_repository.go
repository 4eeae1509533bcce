package repository

import (
	"context"
	"time"

	"github.com/Laibah-Shahid/ats/internal/database"
)

type Resume struct {
	ID         string
	UserID     string
	FullName   string
	Email      string
	Skills     []string
	Experience string
	Education  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ResumeRepository interface {
	// ListAll returns every resume in the store. Matching is unscoped: each
	// resume in the deployment is a candidate for every job.
	ListAll(ctx context.Context) ([]Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

func (r *PostgresResumeRepository) ListAll(ctx context.Context) ([]Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(user_id, ''), COALESCE(full_name, ''), COALESCE(email, ''),
			COALESCE(skills, '{}'), COALESCE(experience, ''), COALESCE(education, ''),
			created_at, updated_at
		 FROM resumes
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var res Resume
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.FullName, &res.Email,
			&res.Skills, &res.Experience, &res.Education,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
