package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tailorcv/resume-tailor/internal/services"
)

type SkillsHandler struct {
	suggester services.SkillSuggester
}

// NewSkillsHandler accepts a nil suggester; the endpoint then reports the
// index as unavailable.
func NewSkillsHandler(suggester services.SkillSuggester) *SkillsHandler {
	return &SkillsHandler{
		suggester: suggester,
	}
}

// HandleSuggest handles GET /skills/suggest?skill=&limit=
func (h *SkillsHandler) HandleSuggest(c *fiber.Ctx) error {
	if h.suggester == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Skill index is not configured",
		})
	}

	skill := strings.TrimSpace(c.Query("skill"))
	if skill == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "skill query parameter is required",
		})
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 || limit > 20 {
		limit = 5
	}

	suggestions, err := h.suggester.SuggestRelated(c.Context(), skill, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"skill":       skill,
		"suggestions": suggestions,
	})
}
