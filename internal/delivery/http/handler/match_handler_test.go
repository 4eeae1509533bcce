package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Laibah-Shahid/ats/internal/repository"
	"github.com/Laibah-Shahid/ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatchUsecase struct {
	results []usecase.MatchResult
	err     error
	jobID   string
}

func (s *stubMatchUsecase) MatchJob(_ context.Context, jobID string) ([]usecase.MatchResult, error) {
	s.jobID = jobID
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newMatchApp(uc usecase.MatchUsecase) *fiber.App {
	app := fiber.New()
	NewMatchHandler(uc).RegisterRoutes(app)
	return app
}

func postMatch(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/match-resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestMatchResumeMissingJobID(t *testing.T) {
	app := newMatchApp(&stubMatchUsecase{})

	status, body := postMatch(t, app, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Job ID is required", body["error"])

	status, body = postMatch(t, app, `{"jobId": ""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Job ID is required", body["error"])
}

func TestMatchResumeJobNotFound(t *testing.T) {
	app := newMatchApp(&stubMatchUsecase{err: usecase.ErrJobNotFound})

	status, body := postMatch(t, app, `{"jobId": "missing"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Failed to fetch job details", body["error"])
}

func TestMatchResumeResumeLoadFailure(t *testing.T) {
	app := newMatchApp(&stubMatchUsecase{err: usecase.ErrResumesUnavailable})

	status, body := postMatch(t, app, `{"jobId": "job-1"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch resumes", body["error"])
}

func TestMatchResumeUnexpectedError(t *testing.T) {
	app := newMatchApp(&stubMatchUsecase{err: errors.New("boom")})

	status, body := postMatch(t, app, `{"jobId": "job-1"}`)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "boom", body["error"])
}

func TestMatchResumeEmptyResults(t *testing.T) {
	app := newMatchApp(&stubMatchUsecase{results: []usecase.MatchResult{}})

	status, body := postMatch(t, app, `{"jobId": "job-1"}`)
	assert.Equal(t, fiber.StatusOK, status)

	results, ok := body["results"].([]any)
	require.True(t, ok, "results must be an array")
	assert.Empty(t, results)
}

func TestMatchResumeSuccessShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	uc := &stubMatchUsecase{results: []usecase.MatchResult{
		{
			Resume: repository.Resume{
				ID:        "r2",
				FullName:  "Ada",
				Email:     "ada@example.com",
				Skills:    []string{"go"},
				CreatedAt: now,
				UpdatedAt: now,
			},
			MatchPercentage:  90,
			MatchExplanation: "strong",
		},
		{
			Resume:           repository.Resume{ID: "r1", FullName: "Bob"},
			MatchPercentage:  40,
			MatchExplanation: "weak",
		},
	}}
	app := newMatchApp(uc)

	status, body := postMatch(t, app, `{"jobId": "job-1"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "job-1", uc.jobID)

	results := body["results"].([]any)
	require.Len(t, results, 2)

	first := results[0].(map[string]any)
	assert.Equal(t, "r2", first["id"])
	assert.Equal(t, "Ada", first["full_name"])
	assert.Equal(t, float64(90), first["matchPercentage"])
	assert.Equal(t, "strong", first["matchExplanation"])

	second := results[1].(map[string]any)
	assert.Equal(t, float64(40), second["matchPercentage"])
}
