package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Laibah-Shahid/ats/internal/delivery/http/dto"
	"github.com/Laibah-Shahid/ats/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// MatchHandler serves the match trigger. Unlike the rest of the API it does
// not use the semantic envelope: the {error}/{results} shapes below are what
// the board's client already parses.
type MatchHandler struct {
	uc usecase.MatchUsecase
}

func NewMatchHandler(uc usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match-resume", h.MatchResume)
}

type matchRequest struct {
	JobID string `json:"jobId"`
}

func (h *MatchHandler) MatchResume(c fiber.Ctx) error {
	var req matchRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.MatchErrorResponse{Error: err.Error()})
	}

	if strings.TrimSpace(req.JobID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MatchErrorResponse{Error: "Job ID is required"})
	}

	results, err := h.uc.MatchJob(c.Context(), req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.MatchErrorResponse{Error: "Failed to fetch job details"})
		case errors.Is(err, usecase.ErrResumesUnavailable):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MatchErrorResponse{Error: "Failed to fetch resumes"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.MatchErrorResponse{Error: err.Error()})
		}
	}

	out := dto.MatchRunResponse{Results: make([]dto.MatchResultResponse, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, dto.MatchResultResponse{
			ID:               r.Resume.ID,
			UserID:           r.Resume.UserID,
			FullName:         r.Resume.FullName,
			Email:            r.Resume.Email,
			Skills:           r.Resume.Skills,
			Experience:       r.Resume.Experience,
			Education:        r.Resume.Education,
			CreatedAt:        r.Resume.CreatedAt,
			UpdatedAt:        r.Resume.UpdatedAt,
			MatchPercentage:  r.MatchPercentage,
			MatchExplanation: r.MatchExplanation,
		})
	}

	return c.Status(fiber.StatusOK).JSON(out)
}
