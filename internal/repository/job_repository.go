package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Laibah-Shahid/ats/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID              string
	Title           string
	Company         string
	Description     string
	Requirements    string
	Skills          []string
	SalaryMin       *int64
	SalaryMax       *int64
	Location        string
	JobType         string
	ExperienceLevel string
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type JobRepository interface {
	FindByID(ctx context.Context, jobID string) (Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, COALESCE(title, ''), COALESCE(company, ''), COALESCE(description, ''),
	COALESCE(requirements, ''), COALESCE(skills, '{}'), salary_min, salary_max,
	COALESCE(location, ''), COALESCE(job_type, ''), COALESCE(experience_level, ''),
	COALESCE(user_id, ''), created_at, updated_at`

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID string) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)

	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (Job, error) {
	var j Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description,
		&j.Requirements, &j.Skills, &j.SalaryMin, &j.SalaryMax,
		&j.Location, &j.JobType, &j.ExperienceLevel,
		&j.UserID, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}
