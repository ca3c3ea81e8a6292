package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/services"
)

type InterrogationHandler struct {
	interrogation services.InterrogationService
}

func NewInterrogationHandler(interrogation services.InterrogationService) *InterrogationHandler {
	return &InterrogationHandler{
		interrogation: interrogation,
	}
}

// HandleStart handles POST /interrogation
func (h *InterrogationHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterrogationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	snapshot, err := h.interrogation.Start(c.Context(), req.JobDescription, req.Resume)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(snapshot)
}

// HandleAnswer handles POST /interrogation/:id/answer
func (h *InterrogationHandler) HandleAnswer(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interrogation ID format",
		})
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	snapshot, err := h.interrogation.Answer(c.Context(), sessionID, req.Answer)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(snapshot)
}

// HandleGet handles GET /interrogation/:id
func (h *InterrogationHandler) HandleGet(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid interrogation ID format",
		})
	}

	snapshot, err := h.interrogation.Get(sessionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(snapshot)
}
