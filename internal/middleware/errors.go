package middleware

import (
	"errors"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as
// {"error": message, "details": {...}}. Unexpected errors are logged and
// reported, and the client only sees a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindInternal {
		body := fiber.Map{"error": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.Status(appErr.StatusCode()).JSON(body)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	logging.LogError("unhandled_error", err, map[string]interface{}{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": c.Locals("requestid"),
		"user_id":    GetUserID(c),
	})
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// StatusFor reports the status ErrorHandler will answer err with.
func StatusFor(err error) int {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
