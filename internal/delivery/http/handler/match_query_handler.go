package handler

import (
	"github.com/Laibah-Shahid/ats/internal/delivery/http/dto"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/middleware"
	"github.com/Laibah-Shahid/ats/internal/infrastructure/cache"
	"github.com/Laibah-Shahid/ats/internal/pkg/response"
	"github.com/Laibah-Shahid/ats/internal/repository"

	"github.com/gofiber/fiber/v3"
)

// MatchQueryHandler serves persisted match rows for recruiters: everything
// here reads what earlier match runs wrote, ordered by percentage.
type MatchQueryHandler struct {
	matches repository.MatchRepository
	cache   ResponseCache
}

func NewMatchQueryHandler(matches repository.MatchRepository, respCache ResponseCache) *MatchQueryHandler {
	return &MatchQueryHandler{matches: matches, cache: respCache}
}

func (h *MatchQueryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:job_id/matches", h.ListForJob)
	r.Get("/resumes/:resume_id/matches", h.ListForResume)
}

func (h *MatchQueryHandler) ListForJob(c fiber.Ctx) error {
	jobID := c.Params("job_id")
	if jobID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Job ID is required", nil, nil)
	}

	return h.serveList(c, cache.JobMatchesKey(jobID), func() ([]repository.MatchRecord, error) {
		return h.matches.ListByJobID(c.Context(), jobID)
	})
}

func (h *MatchQueryHandler) ListForResume(c fiber.Ctx) error {
	resumeID := c.Params("resume_id")
	if resumeID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume ID is required", nil, nil)
	}

	return h.serveList(c, cache.ResumeMatchesKey(resumeID), func() ([]repository.MatchRecord, error) {
		return h.matches.ListByResumeID(c.Context(), resumeID)
	})
}

func (h *MatchQueryHandler) serveList(c fiber.Ctx, key string, load func() ([]repository.MatchRecord, error)) error {
	var cached []dto.MatchRecordResponse
	if h.cache != nil {
		if hit, _ := h.cache.GetJSON(c.Context(), key, &cached); hit {
			return response.Success(c, fiber.StatusOK, response.MessageOK, cached)
		}
	}

	records, err := load()
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.MatchRecordResponse, 0, len(records))
	for _, m := range records {
		out = append(out, dto.MatchRecordResponse{
			ID:               m.ID,
			JobID:            m.JobID,
			ResumeID:         m.ResumeID,
			MatchPercentage:  m.MatchPercentage,
			MatchExplanation: m.MatchExplanation,
			CreatedAt:        m.CreatedAt,
			UpdatedAt:        m.UpdatedAt,
		})
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), key, out, 0)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
