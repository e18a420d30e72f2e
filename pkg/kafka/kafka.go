package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/pkg/events"
	"storefront/pkg/logger"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Producer publishes events keyed by Event.Key.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg Config) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

// Message converts an event into the kafka message written by Publish.
func Message(evt events.Event) (kafka.Message, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(evt.Key),
		Value: body,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
	}, nil
}

func (p *Producer) Publish(ctx context.Context, evt events.Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka producer not initialized")
	}
	msg, err := Message(evt)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Consumer reads events as part of a consumer group and commits offsets only
// after the handler succeeds.
type Consumer struct {
	reader *kafka.Reader
	logg   *logger.Logger
}

func NewConsumer(cfg Config, logg *logger.Logger) *Consumer {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logg: logg,
	}
}

func (c *Consumer) Consume(ctx context.Context, handler events.Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch kafka message: %w", err)
		}

		evt, err := events.Decode(msg.Value)
		if err != nil {
			c.logg.Error(ctx, "kafka.decode_failed", err)
		} else if err := handler(ctx, evt); err != nil {
			// Offset stays uncommitted so the group redelivers after a restart.
			c.logg.Error(c.logg.WithField(ctx, "event_id", evt.ID), "kafka.handler_failed", err)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit kafka offset: %w", err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
