package handlers

import (
	"strconv"

	"showcase/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// respondError maps the errs taxonomy onto HTTP. Store failures are logged in
// full and answered with a generic message.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	switch {
	case errs.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs.FieldErrors(err),
		})
	case errs.IsUnauthenticated(err):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	case errs.IsForbidden(err):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Admin access required",
		})
	case errs.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errs.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Conflict",
		})
	default:
		logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

// paramID parses the :id route parameter as a positive integer.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(key, "must be an integer")
	}
	return n, nil
}
