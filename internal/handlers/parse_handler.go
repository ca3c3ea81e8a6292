package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tailorcv/resume-tailor/internal/models"
	"tailorcv/resume-tailor/internal/services"
)

type ParseHandler struct {
	resumeParser services.ResumeParserService
	jobParser    services.JobParserService
}

func NewParseHandler(resumeParser services.ResumeParserService, jobParser services.JobParserService) *ParseHandler {
	return &ParseHandler{
		resumeParser: resumeParser,
		jobParser:    jobParser,
	}
}

// HandleParseResume handles POST /parse/resume
func (h *ParseHandler) HandleParseResume(c *fiber.Ctx) error {
	text, err := parseTextBody(c)
	if err != nil {
		return respondFiberError(c, err)
	}

	return c.JSON(fiber.Map{
		"resume": h.resumeParser.Parse(text),
	})
}

// HandleParseJob handles POST /parse/job
func (h *ParseHandler) HandleParseJob(c *fiber.Ctx) error {
	text, err := parseTextBody(c)
	if err != nil {
		return respondFiberError(c, err)
	}

	return c.JSON(fiber.Map{
		"job": h.jobParser.Parse(text),
	})
}

func parseTextBody(c *fiber.Ctx) (string, error) {
	var req models.ParseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.Text) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "text is required")
	}

	return req.Text, nil
}
