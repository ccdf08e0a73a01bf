package handlers

import (
	"errors"
	"log"
	"strconv"

	"littlelemon/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation:      fiber.StatusBadRequest,
	apperrors.KindUnauthenticated: fiber.StatusUnauthorized,
	apperrors.KindForbidden:       fiber.StatusForbidden,
	apperrors.KindNotFound:        fiber.StatusNotFound,
}

// ErrorHandler renders every error returned by a handler or middleware.
// It is installed as the Fiber app's ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if status, ok := statusByKind[appErr.Kind]; ok {
			body := fiber.Map{"error": appErr.Message}
			if len(appErr.Fields) > 0 {
				body["errors"] = appErr.Fields
			}
			return c.Status(status).JSON(body)
		}
	}

	// Routing errors (404, 405) and the like
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

// paramID parses a numeric path parameter. Anything else is reported as not found.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NotFound("Not found.")
	}
	return uint(id), nil
}

func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

func invalidBody(err error) error {
	return apperrors.Wrap(apperrors.KindValidation, "Invalid request body", err)
}
