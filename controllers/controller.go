package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pims/models"
	"pims/utils"
)

// actingPrincipal returns the authenticated principal placed in the request
// context by the auth middleware. Write handlers must never stamp audit
// fields from anything else; a write reaching this point without a principal
// is rejected, never silently stamped with an empty identity.
func actingPrincipal(c *fiber.Ctx) (*models.Principal, error) {
	principal, ok := c.Locals("principal").(*models.Principal)
	if !ok || principal == nil {
		return nil, errors.New("no authenticated principal on write path")
	}
	return principal, nil
}

func authenticationRequired(c *fiber.Ctx, err error) error {
	return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeAuthFailed,
		"Authentication required", err)
}
