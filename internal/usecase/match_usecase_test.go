package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Laibah-Shahid/ats/internal/ai/gemini"
	"github.com/Laibah-Shahid/ats/internal/repository"
)

type mockJobRepo struct {
	job repository.Job
	err error
}

func (m mockJobRepo) FindByID(context.Context, string) (repository.Job, error) {
	return m.job, m.err
}
func (m mockJobRepo) ListJobs(context.Context, int, int) ([]repository.Job, error) {
	return nil, nil
}

type mockResumeRepo struct {
	items []repository.Resume
	err   error
}

func (m mockResumeRepo) ListAll(context.Context) ([]repository.Resume, error) {
	return m.items, m.err
}

type mockMatchRepo struct {
	records   map[string]repository.MatchRecord
	listErr   error
	upsertErr error
	upserts   []repository.MatchUpsert
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{records: make(map[string]repository.MatchRecord)}
}

func (m *mockMatchRepo) ListByJobID(context.Context, string) ([]repository.MatchRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]repository.MatchRecord, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockMatchRepo) ListByResumeID(context.Context, string) ([]repository.MatchRecord, error) {
	return nil, nil
}

func (m *mockMatchRepo) Upsert(_ context.Context, up repository.MatchUpsert) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, up)
	m.records[up.ResumeID] = repository.MatchRecord{
		JobID:            up.JobID,
		ResumeID:         up.ResumeID,
		MatchPercentage:  up.MatchPercentage,
		MatchExplanation: up.MatchExplanation,
		UpdatedAt:        up.UpdatedAt,
	}
	return nil
}

type mockScorer struct {
	analyses map[string]gemini.Analysis
	err      error
	calls    int
}

func (m *mockScorer) Score(_ context.Context, _ string, resumeID string) (gemini.Analysis, error) {
	m.calls++
	if m.err != nil {
		return gemini.Analysis{}, m.err
	}
	return m.analyses[resumeID], nil
}

func newTestMatcher(jobs mockJobRepo, resumes mockResumeRepo, matches *mockMatchRepo, scorer *mockScorer) *Matcher {
	m := NewMatcher(jobs, resumes, matches, scorer, nil, nil)
	m.pacer.sleep = func(time.Duration) {}
	return m
}

func testJob() repository.Job {
	return repository.Job{
		ID:     "job-1",
		Title:  "Backend Engineer",
		Skills: []string{"React", "Node.js"},
	}
}

func testResume(id string, skills ...string) repository.Resume {
	return repository.Resume{ID: id, FullName: "Candidate " + id, Skills: skills}
}

func TestMatchJob_JobNotFound(t *testing.T) {
	m := newTestMatcher(
		mockJobRepo{err: repository.ErrJobNotFound},
		mockResumeRepo{},
		newMockMatchRepo(),
		&mockScorer{},
	)
	_, err := m.MatchJob(context.Background(), "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMatchJob_ResumeLoadFailure(t *testing.T) {
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{err: errors.New("store down")},
		newMockMatchRepo(),
		&mockScorer{},
	)
	_, err := m.MatchJob(context.Background(), "job-1")
	if !errors.Is(err, ErrResumesUnavailable) {
		t.Fatalf("expected ErrResumesUnavailable, got %v", err)
	}
}

func TestMatchJob_NoResumes(t *testing.T) {
	scorer := &mockScorer{}
	m := newTestMatcher(mockJobRepo{job: testJob()}, mockResumeRepo{}, newMockMatchRepo(), scorer)

	results, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
	if scorer.calls != 0 {
		t.Fatalf("expected no scorer calls, got %d", scorer.calls)
	}
}

func TestMatchJob_SecondRunIsAllCacheHits(t *testing.T) {
	matches := newMockMatchRepo()
	scorer := &mockScorer{analyses: map[string]gemini.Analysis{
		"r1": {MatchPercentage: 80, Explanation: "good fit"},
		"r2": {MatchPercentage: 30, Explanation: "weak fit"},
	}}
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{items: []repository.Resume{testResume("r1", "react"), testResume("r2", "cobol")}},
		matches,
		scorer,
	)

	first, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if scorer.calls != 2 {
		t.Fatalf("expected 2 scorer calls, got %d", scorer.calls)
	}

	second, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if scorer.calls != 2 {
		t.Fatalf("expected no additional scorer calls, got %d total", scorer.calls)
	}

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].MatchPercentage != second[i].MatchPercentage ||
			first[i].MatchExplanation != second[i].MatchExplanation {
			t.Fatalf("result %d differs between runs", i)
		}
	}
}

func TestMatchJob_FreshnessWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		age       time.Duration
		wantCalls int
	}{
		{"47h old record is reused", 47 * time.Hour, 0},
		{"49h old record is rescored", 49 * time.Hour, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := newMockMatchRepo()
			matches.records["r1"] = repository.MatchRecord{
				JobID:            "job-1",
				ResumeID:         "r1",
				MatchPercentage:  77,
				MatchExplanation: "cached",
				UpdatedAt:        now.Add(-tc.age),
			}
			scorer := &mockScorer{analyses: map[string]gemini.Analysis{
				"r1": {MatchPercentage: 55, Explanation: "rescored"},
			}}
			m := newTestMatcher(
				mockJobRepo{job: testJob()},
				mockResumeRepo{items: []repository.Resume{testResume("r1", "react")}},
				matches,
				scorer,
			)
			m.now = func() time.Time { return now }

			results, err := m.MatchJob(context.Background(), "job-1")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if scorer.calls != tc.wantCalls {
				t.Fatalf("expected %d scorer calls, got %d", tc.wantCalls, scorer.calls)
			}
			if tc.wantCalls == 0 && results[0].MatchPercentage != 77 {
				t.Fatalf("expected cached percentage 77, got %d", results[0].MatchPercentage)
			}
			if tc.wantCalls == 1 && results[0].MatchPercentage != 55 {
				t.Fatalf("expected rescored percentage 55, got %d", results[0].MatchPercentage)
			}
		})
	}
}

func TestMatchJob_FallbackOnScorerFailure(t *testing.T) {
	matches := newMockMatchRepo()
	scorer := &mockScorer{err: errors.New("rate limit exceeded after 4 attempts")}
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{items: []repository.Resume{testResume("r1", "react", "typescript")}},
		matches,
		scorer,
	)

	results, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].MatchPercentage != 50 {
		t.Fatalf("expected fallback percentage 50, got %d", results[0].MatchPercentage)
	}
	if want := "found 1 skill matches"; !contains(results[0].MatchExplanation, want) {
		t.Fatalf("explanation missing %q: %s", want, results[0].MatchExplanation)
	}
	if !contains(results[0].MatchExplanation, "react") {
		t.Fatalf("explanation should list the matched skill: %s", results[0].MatchExplanation)
	}
	if len(matches.upserts) != 1 {
		t.Fatalf("fallback result should still be persisted")
	}
}

func TestMatchJob_PersistFailureStillReturnsScore(t *testing.T) {
	matches := newMockMatchRepo()
	matches.upsertErr = errors.New("disk full")
	scorer := &mockScorer{analyses: map[string]gemini.Analysis{
		"r1": {MatchPercentage: 66, Explanation: "fine"},
	}}
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{items: []repository.Resume{testResume("r1", "react")}},
		matches,
		scorer,
	)

	results, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 || results[0].MatchPercentage != 66 {
		t.Fatalf("expected the computed score despite persist failure, got %+v", results)
	}
}

func TestMatchJob_SortsDescending(t *testing.T) {
	matches := newMockMatchRepo()
	scorer := &mockScorer{analyses: map[string]gemini.Analysis{
		"r1": {MatchPercentage: 20, Explanation: "low"},
		"r2": {MatchPercentage: 90, Explanation: "high"},
		"r3": {MatchPercentage: 55, Explanation: "mid"},
	}}
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{items: []repository.Resume{
			testResume("r1"), testResume("r2"), testResume("r3"),
		}},
		matches,
		scorer,
	)

	results, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := []int{results[0].MatchPercentage, results[1].MatchPercentage, results[2].MatchPercentage}
	if got[0] != 90 || got[1] != 55 || got[2] != 20 {
		t.Fatalf("expected descending order, got %v", got)
	}
}

func TestMatchJob_PreloadFailureDoesNotAbort(t *testing.T) {
	matches := newMockMatchRepo()
	matches.listErr = errors.New("transient")
	scorer := &mockScorer{analyses: map[string]gemini.Analysis{
		"r1": {MatchPercentage: 40, Explanation: "ok"},
	}}
	m := newTestMatcher(
		mockJobRepo{job: testJob()},
		mockResumeRepo{items: []repository.Resume{testResume("r1")}},
		matches,
		scorer,
	)

	results, err := m.MatchJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(results) != 1 || results[0].MatchPercentage != 40 {
		t.Fatalf("expected scoring to proceed without the preload, got %+v", results)
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
