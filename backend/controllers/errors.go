package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"senya/backend/middleware"
	"senya/backend/progression"
	"senya/backend/utils"
)

// respondError maps a service error onto the JSON error envelope.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progression.ErrNotFound):
		return utils.Fail(c, fiber.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, progression.ErrInvalidInput):
		return utils.Fail(c, fiber.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, progression.ErrAlreadyDone):
		return utils.Fail(c, fiber.StatusBadRequest, "already_done", err.Error())
	case errors.Is(err, progression.ErrInsufficientRubies):
		return utils.Fail(c, fiber.StatusBadRequest, "insufficient_rubies", err.Error())
	case errors.Is(err, progression.ErrTransient):
		return utils.Fail(c, fiber.StatusServiceUnavailable, "transient", "Please retry the request")
	default:
		return utils.InternalServerError(c, "Internal server error")
	}
}

func currentUser(c *fiber.Ctx) (uint, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	return principal.UserID, ok
}

// idParam reads a positive numeric route parameter.
func idParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
