package kafka

import (
	"context"
	"encoding/json"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/segmentio/kafka-go"
)

// OrderEventProducer publishes order lifecycle events. Publishing is
// best-effort: the order record is the source of truth, the event stream is
// for downstream consumers.
type OrderEventProducer interface {
	SendOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer}
}

func (p *Producer) SendOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(event.GatewayOrderID),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
