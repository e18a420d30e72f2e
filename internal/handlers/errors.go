package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/apperrors"
	"storefront/pkg/logger"
)

// ErrorHandler renders every error returned by a handler or middleware as
// {"message": ..., "errors": [...]}. Server-side failures are logged with
// their full chain; the client only sees the public message.
func ErrorHandler(logg *logger.Logger) fiber.ErrorHandler {
	if logg == nil {
		logg = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		body := fiber.Map{"message": apperrors.MetadataFor(apperrors.CodeInternal).PublicMessage}

		var fiberErr *fiber.Error
		if appErr := apperrors.As(err); appErr != nil {
			meta := apperrors.MetadataFor(appErr.Code())
			status = meta.HTTPStatus
			message := appErr.Message()
			if message == "" {
				message = meta.PublicMessage
			}
			body["message"] = message
			if meta.DetailsAllowed && appErr.Details() != nil {
				body["errors"] = appErr.Details()
			}
		} else if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			body["message"] = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logg.Error(c.UserContext(), "request.failed", err)
		}
		return c.Status(status).JSON(body)
	}
}

// fail passes application errors through and wraps anything else as an
// internal error with a resource-specific message.
func fail(err error, message string) error {
	if apperrors.As(err) != nil {
		return err
	}
	return apperrors.Wrap(apperrors.CodeInternal, err, message)
}
