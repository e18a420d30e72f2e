package services

import (
	"context"

	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// NewOrderEventHandler returns the consumer-side handler for order events. It
// records each event and never asks for redelivery.
func NewOrderEventHandler(logg *logger.Logger, m *metrics.Metrics) events.Handler {
	if logg == nil {
		logg = logger.Nop()
	}
	return func(ctx context.Context, evt events.Event) error {
		ctx = logg.WithFields(ctx, map[string]any{
			"event_id":   evt.ID,
			"event_type": evt.Type,
			"key":        evt.Key,
		})
		switch evt.Type {
		case events.OrderCreated, events.OrderStatusChanged:
			logg.Info(ctx, "order.event_consumed")
		default:
			logg.Warn(ctx, "order.event_unknown_type")
		}
		m.IncEventConsumed(evt.Type)
		return nil
	}
}
