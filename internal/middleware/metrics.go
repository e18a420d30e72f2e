package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/pkg/metrics"
)

// Metrics records request counts and latency by route pattern.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/" {
			route = ""
		}
		m.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
