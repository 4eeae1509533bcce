package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Laibah-Shahid/ats/internal/delivery/http/dto"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/middleware"
	"github.com/Laibah-Shahid/ats/internal/infrastructure/cache"
	"github.com/Laibah-Shahid/ats/internal/pkg/response"
	"github.com/Laibah-Shahid/ats/internal/repository"

	"github.com/gofiber/fiber/v3"
)

// ResponseCache is the slice of the redis cache the read-side handlers use.
type ResponseCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type JobHandler struct {
	jobs  repository.JobRepository
	cache ResponseCache
}

func NewJobHandler(jobs repository.JobRepository, respCache ResponseCache) *JobHandler {
	return &JobHandler{jobs: jobs, cache: respCache}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/", h.ListJobs)
	grp.Get("/:job_id", h.GetJob)
}

func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	key := cache.JobListKey(limit, offset)
	var cached []dto.JobResponse
	if h.cache != nil {
		if hit, _ := h.cache.GetJSON(c.Context(), key, &cached); hit {
			return response.Success(c, fiber.StatusOK, response.MessageOK, cached)
		}
	}

	jobs, err := h.jobs.ListJobs(c.Context(), limit, offset)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}

	if h.cache != nil {
		_ = h.cache.SetJSON(c.Context(), key, out, 0)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	jobID := c.Params("job_id")
	if jobID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Job ID is required", nil, nil)
	}

	job, err := h.jobs.FindByID(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobResponse(job))
}

func toJobResponse(j repository.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Skills:          j.Skills,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		Location:        j.Location,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
