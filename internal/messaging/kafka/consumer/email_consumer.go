package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/events"
	"github.com/deke-r/senseHrm/internal/notification"
)

const maxDeliveryAttempts = 3

// EmailConsumer reads notification events and delivers them over SMTP.
type EmailConsumer struct {
	reader *kafkago.Reader
	sender notification.Sender
	logger *zap.Logger
}

func NewEmailConsumer(broker, groupID string, sender notification.Sender) *EmailConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		GroupID: groupID,
		Topic:   events.TopicNotificationEmail,
	})

	return &EmailConsumer{
		reader: reader,
		sender: sender,
		logger: zap.L().Named("consumer.email"),
	}
}

func (c *EmailConsumer) Run(ctx context.Context) {
	c.logger.Info("email consumer started", zap.String("topic", events.TopicNotificationEmail))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("email consumer stopped")
				return
			}
			c.logger.Error("fetch message", zap.Error(err))
			continue
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit message", zap.Error(err))
		}
	}
}

func (c *EmailConsumer) handle(_ context.Context, msg kafkago.Message) {
	var email events.EmailRequested
	if err := json.Unmarshal(msg.Value, &email); err != nil {
		// Malformed payloads are committed and dropped, not retried.
		c.logger.Error("decode notification event", zap.Error(err))
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		if lastErr = c.sender.Send(email); lastErr == nil {
			c.logger.Info("notification delivered",
				zap.String("to", email.To),
				zap.String("subject", email.Subject),
			)
			return
		}
		c.logger.Warn("notification delivery failed",
			zap.String("to", email.To),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
	}

	// Delivery is best effort: after the attempts above the message is
	// committed and logged, never requeued forever.
	c.logger.Error("notification dropped",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.Error(lastErr),
	)
}

func (c *EmailConsumer) Close() error {
	return c.reader.Close()
}
