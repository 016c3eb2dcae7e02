package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// AlertConsumer reads the notifications topic and hands each decoded stock
// alert to a handler. Messages that do not decode as alerts are skipped.
type AlertConsumer struct {
	reader *kafka.Reader
}

func NewAlertConsumer(brokers []string, groupID, topic string) *AlertConsumer {
	return &AlertConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *AlertConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume blocks until the context is cancelled or the handler fails.
func (c *AlertConsumer) Consume(ctx context.Context, handler func(context.Context, StockAlert) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var alert StockAlert
		if err := json.Unmarshal(msg.Value, &alert); err != nil {
			continue
		}
		if err := handler(ctx, alert); err != nil {
			return err
		}
	}
}
