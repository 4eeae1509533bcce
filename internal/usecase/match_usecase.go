package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Laibah-Shahid/ats/internal/ai/gemini"
	"github.com/Laibah-Shahid/ats/internal/domain/matching"
	"github.com/Laibah-Shahid/ats/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrResumesUnavailable = errors.New("resumes unavailable")
)

const (
	// A persisted match younger than this is reused verbatim instead of
	// rescored. Part of the caching contract, not a tunable.
	freshnessWindow = 48 * time.Hour

	// Gap enforced before the next external call, depending on how the
	// previous resume's scoring went.
	successPacing = 1500 * time.Millisecond
	errorPacing   = 1 * time.Second
)

// MatchResult is one scored resume in a ranked run.
type MatchResult struct {
	Resume           repository.Resume
	MatchPercentage  int
	MatchExplanation string
}

// MatchScorer is the external scoring capability. An error means no result
// was produced and the fallback applies.
type MatchScorer interface {
	Score(ctx context.Context, prompt, resumeID string) (gemini.Analysis, error)
}

// ReadCacheInvalidator clears read-side response caches after a run writes
// new match rows.
type ReadCacheInvalidator interface {
	InvalidateJobMatches(ctx context.Context, jobID string) error
}

type MatchUsecase interface {
	MatchJob(ctx context.Context, jobID string) ([]MatchResult, error)
}

// Matcher scores every resume in the store against one job. Resumes are
// processed strictly one at a time; the pacer serializes external calls to
// stay inside the scorer's rate limit. Concurrent runs for the same job are
// not mutually excluded — upserts race with last-write-wins, acceptable at
// this deployment's contention level.
type Matcher struct {
	jobs    repository.JobRepository
	resumes repository.ResumeRepository
	matches repository.MatchRepository
	scorer  MatchScorer
	cache   ReadCacheInvalidator
	logger  *zap.Logger

	pacer *callPacer
	now   func() time.Time
}

func NewMatcher(
	jobs repository.JobRepository,
	resumes repository.ResumeRepository,
	matches repository.MatchRepository,
	scorer MatchScorer,
	cache ReadCacheInvalidator,
	logger *zap.Logger,
) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		jobs:    jobs,
		resumes: resumes,
		matches: matches,
		scorer:  scorer,
		cache:   cache,
		logger:  logger,
		pacer:   newCallPacer(),
		now:     time.Now,
	}
}

// MatchJob loads the job and all resumes, scores each resume (reusing fresh
// persisted matches), and returns the list ranked by percentage descending.
// It fails only when the job or the resume set cannot be loaded; per-resume
// degradations never surface as errors.
func (u *Matcher) MatchJob(ctx context.Context, jobID string) ([]MatchResult, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		u.logger.Warn("job lookup failed", zap.String("job_id", jobID), zap.Error(err))
		return nil, ErrJobNotFound
	}

	resumes, err := u.resumes.ListAll(ctx)
	if err != nil {
		u.logger.Error("resume load failed", zap.String("job_id", jobID), zap.Error(err))
		return nil, ErrResumesUnavailable
	}
	if len(resumes) == 0 {
		return []MatchResult{}, nil
	}

	existing, err := u.matches.ListByJobID(ctx, jobID)
	if err != nil {
		// Rescoring everything is worse than scoring without the preload;
		// proceed with an empty lookup.
		u.logger.Warn("existing match preload failed", zap.String("job_id", jobID), zap.Error(err))
	}
	byResume := make(map[string]repository.MatchRecord, len(existing))
	for _, m := range existing {
		byResume[m.ResumeID] = m
	}

	basePrompt := buildJobPrompt(job)
	results := make([]MatchResult, 0, len(resumes))
	rescored := false

	for _, resume := range resumes {
		if m, ok := byResume[resume.ID]; ok {
			if age := u.now().Sub(m.UpdatedAt); age < freshnessWindow {
				u.logger.Debug("reusing fresh match",
					zap.String("job_id", jobID),
					zap.String("resume_id", resume.ID),
					zap.Duration("age", age),
				)
				results = append(results, MatchResult{
					Resume:           resume,
					MatchPercentage:  m.MatchPercentage,
					MatchExplanation: m.MatchExplanation,
				})
				continue
			}
		}

		prompt := basePrompt + "\n" + buildResumePrompt(resume)

		u.pacer.Wait()
		analysis, scoreErr := u.scorer.Score(ctx, prompt, resume.ID)

		var percentage int
		var explanation string
		if scoreErr != nil {
			fb := matching.Fallback(job.Skills, resume.Skills)
			percentage, explanation = fb.Percentage, fb.Explanation
			u.logger.Info("using fallback match",
				zap.String("job_id", jobID),
				zap.String("resume_id", resume.ID),
				zap.Error(scoreErr),
			)
			u.pacer.Record(errorPacing)
		} else {
			percentage, explanation = analysis.MatchPercentage, analysis.Explanation
			u.pacer.Record(successPacing)
		}

		if err := u.matches.Upsert(ctx, repository.MatchUpsert{
			JobID:            jobID,
			ResumeID:         resume.ID,
			MatchPercentage:  percentage,
			MatchExplanation: explanation,
			UpdatedAt:        u.now().UTC(),
		}); err != nil {
			// The computed score is still returned this invocation; callers
			// must not assume a result implies successful caching.
			u.logger.Error("match persist failed",
				zap.String("job_id", jobID),
				zap.String("resume_id", resume.ID),
				zap.Error(err),
			)
		}
		rescored = true

		results = append(results, MatchResult{
			Resume:           resume,
			MatchPercentage:  percentage,
			MatchExplanation: explanation,
		})
	}

	if rescored && u.cache != nil {
		if err := u.cache.InvalidateJobMatches(ctx, jobID); err != nil {
			u.logger.Warn("read cache invalidation failed", zap.String("job_id", jobID), zap.Error(err))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	return results, nil
}
