package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/logger"
)

// RequestLogger must run after the requestid middleware. It attaches the
// request id to the request context and logs one line per request. Handler
// errors are rendered here through the app's error handler so the logged
// status is the one the client sees.
func RequestLogger(logg *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(logg.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID)))

		if err := c.Next(); err != nil {
			if handlerErr := c.App().Config().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		ctx := logg.WithFields(c.UserContext(), map[string]any{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if userID := UserID(c); userID != "" {
			ctx = logg.WithUserID(ctx, userID)
		}
		logg.Info(ctx, "request.complete")
		return nil
	}
}
