package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/utils"
)

// respondError maps a service error to its HTTP status and the standard
// ErrorResponse body.
func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFor(err)).JSON(utils.E(message, err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrFileMissing):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, services.ErrUserReferenced):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrIDMismatch),
		errors.Is(err, services.ErrInvalidAccountant),
		errors.Is(err, services.ErrInvalidTaxpayer),
		errors.Is(err, services.ErrInvalidOwner):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
