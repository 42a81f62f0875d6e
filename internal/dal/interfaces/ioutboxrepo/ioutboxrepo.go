package ioutboxrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/service/models/outbox"
)

// IOutboxRepository stores order events until the outbox worker publishes them.
type IOutboxRepository interface {
	// Insert enqueues an event. Called inside the order transaction.
	Insert(ctx context.Context, msg outbox.OutboxMessage) error

	// GetPendingMessages returns up to limit messages due at now that still have retries left.
	GetPendingMessages(ctx context.Context, now time.Time, limit int) ([]outbox.OutboxMessage, error)

	Delete(ctx context.Context, id int64) error

	// UpdateRetry records a failed publish and reschedules the message.
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error
}
