package eventbus

import (
	"context"
	"encoding/json"

	kafka "github.com/segmentio/kafka-go"
)

// KafkaDestination publishes events onto a durable, replayable topic. The
// read-model projections in this repository are fed from NATS, not from it.
type KafkaDestination struct {
	writer *kafka.Writer
}

func NewKafkaDestination(brokers []string, topic string) *KafkaDestination {
	return &KafkaDestination{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (d *KafkaDestination) Name() string { return "kafka" }

func (d *KafkaDestination) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	return d.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Name),
		Value: body,
	})
}

func (d *KafkaDestination) Close() error { return d.writer.Close() }
