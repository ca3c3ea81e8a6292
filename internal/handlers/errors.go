package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tailorcv/resume-tailor/internal/services"
)

// respondError maps service errors onto HTTP statuses. Validation failures
// come back with their field breakdown; oracle failures get the status of
// their kind so a browser client can distinguish "retry later" from "broken".
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Interrogation session not found",
		})
	case errors.Is(err, services.ErrInterrogationComplete):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Interrogation is already complete",
		})
	case errors.Is(err, services.ErrTurnInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Previous answer is still being processed",
		})
	}

	var oracleErr *services.OracleError
	if errors.As(err, &oracleErr) {
		return c.Status(oracleStatus(oracleErr.Kind)).JSON(fiber.Map{
			"error": oracleErr.Error(),
			"kind":  string(oracleErr.Kind),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func oracleStatus(kind services.OracleErrorKind) int {
	switch kind {
	case services.OracleRateLimited:
		return fiber.StatusTooManyRequests
	case services.OracleQuotaExhausted:
		return fiber.StatusPaymentRequired
	case services.OracleTimeout:
		return fiber.StatusGatewayTimeout
	case services.OracleEmptyResponse, services.OracleMalformed:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusServiceUnavailable
	}
}
