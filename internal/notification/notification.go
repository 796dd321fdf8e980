package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/events"
	"github.com/deke-r/senseHrm/internal/messaging/kafka"
	"github.com/deke-r/senseHrm/internal/shared/contextutil"
)

// Notifier enqueues notification emails onto the outbox. When bound to the
// caller's transaction the enqueue commits or rolls back with the state
// change; downstream delivery failures never reach the caller.
type Notifier interface {
	WithTx(tx *sql.Tx) Notifier
	Enqueue(ctx context.Context, aggregateType string, aggregateID uint, email events.EmailRequested) error
}

type outboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository) Notifier {
	return &outboxNotifier{
		outbox: outbox,
		logger: zap.L().Named("notification"),
	}
}

func (n *outboxNotifier) WithTx(tx *sql.Tx) Notifier {
	return &outboxNotifier{
		outbox: n.outbox.WithTx(tx),
		logger: n.logger,
	}
}

func (n *outboxNotifier) Enqueue(ctx context.Context, aggregateType string, aggregateID uint, email events.EmailRequested) error {
	payload, err := json.Marshal(email)
	if err != nil {
		n.logger.Error("marshal notification payload", zap.Error(err))
		return err
	}

	event := &kafka.OutboxEvent{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   strconv.FormatUint(uint64(aggregateID), 10),
		EventType:     events.TypeNotificationEmail,
		Topic:         events.TopicNotificationEmail,
		Payload:       payload,
	}

	if err := n.outbox.Create(ctx, event); err != nil {
		n.logger.Error("enqueue notification failed",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err),
		)
		return err
	}
	return nil
}
