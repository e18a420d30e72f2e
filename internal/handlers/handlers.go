package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/apperrors"
)

// Guards are the route-level middleware handlers use to protect endpoints.
// User and Admin must be chained after Authenticated.
type Guards struct {
	Authenticated fiber.Handler
	User          fiber.Handler
	Admin         fiber.Handler
}

// paramID parses a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Invalid("Invalid id", apperrors.FieldError{
			Field:   name,
			Tag:     "numeric",
			Message: "must be a positive integer",
		})
	}
	return uint(id), nil
}
