package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/repositories"
	"tailorcv/resume-tailor/internal/services"
)

type ScoreHandler struct {
	scoreJobs services.ScoreJobService
	worker    services.Worker
}

func NewScoreHandler(scoreJobs services.ScoreJobService, worker services.Worker) *ScoreHandler {
	return &ScoreHandler{
		scoreJobs: scoreJobs,
		worker:    worker,
	}
}

// HandleScore handles POST /score. The comparison runs asynchronously; the
// caller polls GET /score/:id for the outcome.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	analysis, err := h.scoreJobs.Submit(req)
	if err != nil {
		return respondError(c, err)
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScoreQueuedResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	})
}

// HandleGetResult handles GET /score/:id
func (h *ScoreHandler) HandleGetResult(c *fiber.Ctx) error {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	result, err := h.scoreJobs.Result(analysisID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Score analysis not found",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(result)
}
