package dto

import "time"

// MatchResultResponse is one entry of the match endpoint's results array:
// the resume row spread flat, plus the two camelCase match fields. The shape
// is fixed — existing board clients parse it.
type MatchResultResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	MatchPercentage  int    `json:"matchPercentage"`
	MatchExplanation string `json:"matchExplanation"`
}

type MatchRunResponse struct {
	Results []MatchResultResponse `json:"results"`
}

type MatchErrorResponse struct {
	Error string `json:"error"`
}

// MatchRecordResponse is a persisted match row on the read-side endpoints.
type MatchRecordResponse struct {
	ID               string    `json:"id"`
	JobID            string    `json:"job_id"`
	ResumeID         string    `json:"resume_id"`
	MatchPercentage  int       `json:"match_percentage"`
	MatchExplanation string    `json:"match_explanation"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
