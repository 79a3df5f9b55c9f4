package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			MinBytes:          1,
			MaxBytes:          10e6,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
			StartOffset:       kafka.FirstOffset,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume fetches messages until ctx is canceled or handler fails. Offsets are
// committed only after handler returns nil.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

// DecodeExportEvent unmarshals a message value into a ReportExportEvent.
func DecodeExportEvent(msg kafka.Message) (ReportExportEvent, error) {
	var event ReportExportEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ReportExportEvent{}, fmt.Errorf("decode export event: %w", err)
	}
	return event, nil
}
