package dto

import "time"

type JobResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Skills          []string  `json:"skills"`
	SalaryMin       *int64    `json:"salary_min"`
	SalaryMax       *int64    `json:"salary_max"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
