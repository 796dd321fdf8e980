package producer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deke-r/senseHrm/internal/messaging/kafka"
)

const (
	pollInterval = 3 * time.Second
	batchSize    = 50
)

// OutboxWorker drains pending outbox rows onto Kafka. Rows stay pending
// until the broker acknowledges the write, so delivery is at-least-once.
type OutboxWorker struct {
	outbox    kafka.OutboxRepository
	publisher Publisher
	logger    *zap.Logger
}

func NewOutboxWorker(outbox kafka.OutboxRepository, publisher Publisher) *OutboxWorker {
	return &OutboxWorker{
		outbox:    outbox,
		publisher: publisher,
		logger:    zap.L().Named("outbox.worker"),
	}
}

func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	w.logger.Info("outbox worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	pending, err := w.outbox.ListPending(ctx, batchSize)
	if err != nil {
		w.logger.Error("list pending events", zap.Error(err))
		return
	}

	for _, event := range pending {
		if err := w.publisher.Publish(ctx, event.Topic, event.AggregateID, event.Payload); err != nil {
			w.logger.Error("publish event",
				zap.String("event_id", event.ID.String()),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if err := w.outbox.MarkFailed(ctx, event.ID, event.RetryCount+1); err != nil {
				w.logger.Error("mark event failed", zap.String("event_id", event.ID.String()), zap.Error(err))
			}
			continue
		}

		if err := w.outbox.MarkSent(ctx, event.ID); err != nil {
			// The event may be republished on the next tick; consumers
			// must tolerate duplicates.
			w.logger.Error("mark event sent", zap.String("event_id", event.ID.String()), zap.Error(err))
		}
	}
}
