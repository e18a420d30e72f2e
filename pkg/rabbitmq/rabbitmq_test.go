package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/events"
	"storefront/pkg/logger"
)

type fakeAcknowledger struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, redelivered bool) amqp.Delivery {
	evt, err := events.New(events.OrderCreated, "ORD-1", map[string]any{"orderId": 1})
	require.NoError(t, err)
	body, err := json.Marshal(evt)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: body, Redelivered: redelivered}
}

func TestHandleDeliveryAcksOnSuccess(t *testing.T) {
	ack := &fakeAcknowledger{}
	client := &Client{logg: logger.Nop()}

	var seen string
	client.handleDelivery(context.Background(), delivery(t, ack, 1, false), func(ctx context.Context, evt events.Event) error {
		seen = evt.Type
		return nil
	})

	assert.Equal(t, events.OrderCreated, seen)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Empty(t, ack.nacked)
}

func TestHandleDeliveryRequeuesOnlyFirstFailure(t *testing.T) {
	ack := &fakeAcknowledger{}
	client := &Client{logg: logger.Nop()}
	failing := func(context.Context, events.Event) error { return errors.New("boom") }

	client.handleDelivery(context.Background(), delivery(t, ack, 1, false), failing)
	client.handleDelivery(context.Background(), delivery(t, ack, 2, true), failing)

	assert.Equal(t, []uint64{1, 2}, ack.nacked)
	assert.Equal(t, []bool{true, false}, ack.requeue)
	assert.Empty(t, ack.acked)
}

func TestHandleDeliveryDropsUndecodableMessages(t *testing.T) {
	ack := &fakeAcknowledger{}
	client := &Client{logg: logger.Nop()}
	called := false

	msg := amqp.Delivery{Acknowledger: ack, DeliveryTag: 9, Body: []byte("{")}
	client.handleDelivery(context.Background(), msg, func(context.Context, events.Event) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.Equal(t, []uint64{9}, ack.nacked)
	assert.Equal(t, []bool{false}, ack.requeue)
}

func TestPublishWithoutChannel(t *testing.T) {
	client := &Client{}
	err := client.Publish(context.Background(), events.Event{Type: events.OrderCreated})
	assert.Error(t, err)
	assert.NoError(t, client.Close())
}
