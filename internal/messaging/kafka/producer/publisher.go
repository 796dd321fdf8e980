package producer

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher pushes a single message onto a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}

type kafkaPublisher struct {
	writer *kafkago.Writer
}

func NewPublisher(writer *kafkago.Writer) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic string, key string, payload []byte) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
