package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"

	maxOutboxRetries = 5
)

type OutboxEvent struct {
	ID            uuid.UUID
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       json.RawMessage
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
	CreatedAt     time.Time
}

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event *OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, retryCount int) error
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db dbtx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event *OutboxEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Status == "" {
		event.Status = OutboxStatusPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outbox_events
			(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, retry_count, next_retry_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, now())`,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, retry_count, next_retry_at, created_at
		FROM outbox_events
		WHERE status = $1 AND next_retry_at <= now()
		ORDER BY created_at
		LIMIT $2`,
		OutboxStatusPending, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status,
			&e.RetryCount, &e.NextRetryAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events
		SET status = $1, sent_at = now()
		WHERE id = $2`,
		OutboxStatusSent, id,
	)
	if err != nil {
		return fmt.Errorf("mark outbox event sent: %w", err)
	}
	return nil
}

// MarkFailed backs off exponentially; after maxOutboxRetries the event is
// parked as failed and needs operator attention.
func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, retryCount int) error {
	status := OutboxStatusPending
	if retryCount >= maxOutboxRetries {
		status = OutboxStatusFailed
	}
	backoff := time.Duration(1<<uint(retryCount)) * time.Second

	_, err := r.db.ExecContext(ctx, `
		UPDATE outbox_events
		SET status = $1, retry_count = $2, next_retry_at = now() + $3 * interval '1 second'
		WHERE id = $4`,
		status, retryCount, int(backoff.Seconds()), id,
	)
	if err != nil {
		return fmt.Errorf("mark outbox event failed: %w", err)
	}
	return nil
}
